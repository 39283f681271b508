package interpreter

import (
	"math"
	"unicode/utf8"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

func (i *Interpreter) evaluate(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n)
	case *ast.ListLiteral:
		return i.evaluateList(n)
	case *ast.FunctionLiteral:
		return &runtime.FunctionValue{Params: n.Params, Body: n.Body}, nil
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n)
	case *ast.PrefixExpression:
		return i.evaluatePrefix(n)
	case *ast.InfixExpression:
		return i.evaluateInfix(n)
	case *ast.CallExpression:
		return i.evaluateCall(n)
	case *ast.IndexExpression:
		return i.evaluateIndex(n)
	case *ast.MemberAccessExpression:
		return i.evaluateMember(n)
	case nil:
		return nil, i.fail(nil, "missing expression")
	default:
		return nil, i.fail(node, "unsupported expression %s", node.NodeType())
	}
}

// evaluateIdentifier resolves variables first; a declared function or builtin
// name evaluates to the callable itself.
func (i *Interpreter) evaluateIdentifier(n *ast.Identifier) (runtime.Value, error) {
	if val, ok := i.frames.Lookup(n.Name); ok {
		return val, nil
	}
	if fn, ok := i.registry.Function(n.Name); ok {
		return fn, nil
	}
	if b, ok := i.registry.Builtin(n.Name); ok {
		return b, nil
	}
	return nil, i.fail(n, "undefined name '%s'", n.Name)
}

func (i *Interpreter) evaluateList(n *ast.ListLiteral) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(n.Elements))
	for idx, el := range n.Elements {
		val, err := i.evaluate(el)
		if err != nil {
			return nil, err
		}
		if runtime.IsVoid(val) {
			return nil, i.fail(el, "list element %d produced no value", idx)
		}
		elements = append(elements, val)
	}
	return &runtime.ListValue{Elements: elements}, nil
}

// evaluateAssignment overwrites an existing binding. The expression itself has
// no value.
func (i *Interpreter) evaluateAssignment(n *ast.AssignmentExpression) (runtime.Value, error) {
	val, err := i.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if runtime.IsVoid(val) {
		return nil, i.fail(n, "%s: assigned expression produced no value", n.Target.Name)
	}
	if err := i.frames.Assign(n.Target.Name, val); err != nil {
		return nil, i.wrap(n, err, "")
	}
	return runtime.VoidValue{}, nil
}

func (i *Interpreter) evaluatePrefix(n *ast.PrefixExpression) (runtime.Value, error) {
	operand, err := i.evaluate(n.Operand)
	if err != nil {
		return nil, err
	}
	switch v := operand.(type) {
	case runtime.NumberValue:
		if n.Operator == ast.OpSubtract {
			return runtime.NumberValue{Val: -v.Val}, nil
		}
	case runtime.BoolValue:
		if n.Operator == ast.OpNot {
			return runtime.BoolValue{Val: !v.Val}, nil
		}
	}
	return nil, i.fail(n, "unsupported operation: %s %s", n.Operator, kindOf(operand))
}

// evaluateInfix evaluates both operands, left first, before applying the
// operator. && and || do not short-circuit.
func (i *Interpreter) evaluateInfix(n *ast.InfixExpression) (runtime.Value, error) {
	left, err := i.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	if val, ok := applyInfix(n.Operator, left, right); ok {
		return val, nil
	}
	return nil, i.fail(n, "unsupported operation: %s %s %s", kindOf(left), n.Operator, kindOf(right))
}

func applyInfix(op ast.Operator, left, right runtime.Value) (runtime.Value, bool) {
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, false
		}
		return applyNumber(op, l.Val, r.Val)
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		if !ok {
			return nil, false
		}
		switch op {
		case ast.OpAnd:
			return runtime.BoolValue{Val: l.Val && r.Val}, true
		case ast.OpOr:
			return runtime.BoolValue{Val: l.Val || r.Val}, true
		case ast.OpEquals:
			return runtime.BoolValue{Val: l.Val == r.Val}, true
		case ast.OpNotEquals:
			return runtime.BoolValue{Val: l.Val != r.Val}, true
		}
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, false
		}
		switch op {
		case ast.OpEquals:
			return runtime.BoolValue{Val: l.Val == r.Val}, true
		case ast.OpNotEquals:
			return runtime.BoolValue{Val: l.Val != r.Val}, true
		}
	}
	return nil, false
}

func applyNumber(op ast.Operator, l, r float64) (runtime.Value, bool) {
	switch op {
	case ast.OpAdd:
		return runtime.NumberValue{Val: l + r}, true
	case ast.OpSubtract:
		return runtime.NumberValue{Val: l - r}, true
	case ast.OpMultiply:
		return runtime.NumberValue{Val: l * r}, true
	case ast.OpDivide:
		return runtime.NumberValue{Val: l / r}, true
	case ast.OpModulo:
		return runtime.NumberValue{Val: math.Mod(l, r)}, true
	case ast.OpEquals:
		return runtime.BoolValue{Val: l == r}, true
	case ast.OpNotEquals:
		return runtime.BoolValue{Val: l != r}, true
	case ast.OpLessThan:
		return runtime.BoolValue{Val: l < r}, true
	case ast.OpGreaterThan:
		return runtime.BoolValue{Val: l > r}, true
	case ast.OpLessThanOrEquals:
		return runtime.BoolValue{Val: l <= r}, true
	case ast.OpGreaterThanOrEquals:
		return runtime.BoolValue{Val: l >= r}, true
	default:
		return nil, false
	}
}

func (i *Interpreter) evaluateIndex(n *ast.IndexExpression) (runtime.Value, error) {
	object, err := i.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluate(n.Index)
	if err != nil {
		return nil, err
	}
	num, ok := index.(runtime.NumberValue)
	if !ok || num.Val != math.Trunc(num.Val) {
		return nil, i.fail(n.Index, "index must be an integral number, got %s", describeIndex(index))
	}
	pos := int(num.Val)

	switch obj := object.(type) {
	case *runtime.ListValue:
		if pos < 0 || pos >= len(obj.Elements) {
			return nil, i.fail(n, "index %d out of range for list of length %d", pos, len(obj.Elements))
		}
		return obj.Elements[pos], nil
	case runtime.StringValue:
		runes := []rune(obj.Val)
		if pos < 0 || pos >= len(runes) {
			return nil, i.fail(n, "index %d out of range for string of length %d", pos, len(runes))
		}
		return runtime.StringValue{Val: string(runes[pos])}, nil
	default:
		return nil, i.fail(n, "cannot index %s", kindOf(object))
	}
}

func (i *Interpreter) evaluateMember(n *ast.MemberAccessExpression) (runtime.Value, error) {
	object, err := i.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	if n.Member.Name == "length" {
		switch obj := object.(type) {
		case *runtime.ListValue:
			return runtime.NumberValue{Val: float64(len(obj.Elements))}, nil
		case runtime.StringValue:
			return runtime.NumberValue{Val: float64(utf8.RuneCountInString(obj.Val))}, nil
		}
	}
	return nil, i.fail(n, "unknown member '%s' on %s", n.Member.Name, kindOf(object))
}

func kindOf(v runtime.Value) runtime.Kind {
	if v == nil {
		return runtime.KindVoid
	}
	return v.Kind()
}

func describeIndex(v runtime.Value) string {
	if num, ok := v.(runtime.NumberValue); ok {
		return runtime.FormatNumber(num.Val)
	}
	return kindOf(v).String()
}
