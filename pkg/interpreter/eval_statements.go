package interpreter

import (
	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

// execBlock runs statements in order and stops at the first completion that is
// not Normal. Blocks do not open a scope of their own.
func (i *Interpreter) execBlock(block ast.Block) (Completion, error) {
	for _, stmt := range block {
		completion, err := i.execStatement(stmt)
		if err != nil {
			return Completion{}, err
		}
		if completion.Kind != Normal {
			return completion, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) execStatement(node ast.Statement) (Completion, error) {
	switch n := node.(type) {
	case *ast.LetStatement:
		return i.execLet(n)
	case *ast.FunctionDeclaration:
		i.registry.Declare(&runtime.FunctionValue{Name: n.Name.Name, Params: n.Params, Body: n.Body})
		return normal, nil
	case *ast.IfStatement:
		return i.execIf(n)
	case *ast.LoopStatement:
		if n.Binding != nil {
			return i.execForEach(n)
		}
		return i.execForever(n)
	case *ast.ReturnStatement:
		if n.Value == nil {
			return Completion{Kind: Returned, Value: runtime.VoidValue{}}, nil
		}
		val, err := i.evaluate(n.Value)
		if err != nil {
			return Completion{}, err
		}
		return Completion{Kind: Returned, Value: val}, nil
	case *ast.BreakStatement:
		return Completion{Kind: Broken}, nil
	case *ast.ContinueStatement:
		return Completion{Kind: Continued}, nil
	case *ast.ExpressionStatement:
		if _, err := i.evaluate(n.Expression); err != nil {
			return Completion{}, err
		}
		return normal, nil
	default:
		return Completion{}, i.fail(node, "unsupported statement %s", node.NodeType())
	}
}

func (i *Interpreter) execLet(n *ast.LetStatement) (Completion, error) {
	val, err := i.evaluate(n.Value)
	if err != nil {
		return Completion{}, err
	}
	if runtime.IsVoid(val) {
		return Completion{}, i.fail(n, "let %s: initializer produced no value", n.Name.Name)
	}
	i.frames.Declare(n.Name.Name, val)
	return normal, nil
}

func (i *Interpreter) execIf(n *ast.IfStatement) (Completion, error) {
	cond, err := i.evaluate(n.Condition)
	if err != nil {
		return Completion{}, err
	}
	b, ok := cond.(runtime.BoolValue)
	if !ok {
		return Completion{}, i.fail(n.Condition, "if condition must be bool, got %s", kindOf(cond))
	}
	if b.Val {
		return i.execBlock(n.Then)
	}
	if n.Else != nil {
		return i.execBlock(n.Else)
	}
	return normal, nil
}

// execForEach runs the body once per list element in a single loop frame. The
// loop variable is rebound with Declare each iteration, so a name that already
// existed outside the loop ends up holding the last element.
func (i *Interpreter) execForEach(n *ast.LoopStatement) (Completion, error) {
	iterable, err := i.evaluate(n.Binding.Iterable)
	if err != nil {
		return Completion{}, err
	}
	list, ok := iterable.(*runtime.ListValue)
	if !ok {
		return Completion{}, i.fail(n.Binding.Iterable, "loop iterable must be list, got %s", kindOf(iterable))
	}

	i.frames.PushBlock()
	defer i.frames.Pop()

	for _, el := range list.Elements {
		if err := i.interrupted(n); err != nil {
			return Completion{}, err
		}
		i.frames.Declare(n.Binding.Name.Name, el)
		completion, err := i.execBlock(n.Body)
		if err != nil {
			return Completion{}, err
		}
		switch completion.Kind {
		case Normal, Continued:
		case Broken:
			return normal, nil
		case Returned:
			return completion, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) execForever(n *ast.LoopStatement) (Completion, error) {
	i.frames.PushBlock()
	defer i.frames.Pop()

	for {
		if err := i.interrupted(n); err != nil {
			return Completion{}, err
		}
		completion, err := i.execBlock(n.Body)
		if err != nil {
			return Completion{}, err
		}
		switch completion.Kind {
		case Normal, Continued:
		case Broken:
			return normal, nil
		case Returned:
			return completion, nil
		}
	}
}

func (i *Interpreter) interrupted(node ast.Node) error {
	if err := i.ctx.Err(); err != nil {
		return i.wrap(node, err, "interrupted")
	}
	return nil
}
