package interpreter

import (
	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

// evaluateCall resolves a named callee against builtins, then user functions,
// then variables holding a function. Any other callee expression is evaluated
// and must produce something callable.
func (i *Interpreter) evaluateCall(n *ast.CallExpression) (runtime.Value, error) {
	callee, err := i.resolveCallee(n)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(n)
	if err != nil {
		return nil, err
	}
	switch fn := callee.(type) {
	case runtime.BuiltinValue:
		return i.callBuiltin(n, fn, args)
	case *runtime.FunctionValue:
		return i.callFunction(n, fn, args)
	default:
		return nil, i.fail(n, "%s is not callable", kindOf(callee))
	}
}

func (i *Interpreter) resolveCallee(n *ast.CallExpression) (runtime.Value, error) {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return i.evaluate(n.Callee)
	}
	if b, ok := i.registry.Builtin(id.Name); ok {
		return b, nil
	}
	if fn, ok := i.registry.Function(id.Name); ok {
		return fn, nil
	}
	if val, ok := i.frames.Lookup(id.Name); ok {
		return val, nil
	}
	return nil, i.fail(id, "undefined function '%s'", id.Name)
}

func (i *Interpreter) evaluateArguments(n *ast.CallExpression) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(n.Arguments))
	for idx, arg := range n.Arguments {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		if runtime.IsVoid(val) {
			return nil, i.fail(arg, "argument %d produced no value", idx+1)
		}
		args = append(args, val)
	}
	return args, nil
}

// callBuiltin runs an effect-only builtin; the call itself has no value.
func (i *Interpreter) callBuiltin(n *ast.CallExpression, b runtime.BuiltinValue, args []runtime.Value) (runtime.Value, error) {
	if err := b.Impl(i.builtinContext(), args); err != nil {
		return nil, i.wrap(n, err, b.Name)
	}
	return runtime.VoidValue{}, nil
}

// callFunction binds parameters in a fresh call frame and runs the body. A
// function that ends without returning yields no value.
func (i *Interpreter) callFunction(n *ast.CallExpression, fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, i.fail(n, "function %s expects %d %s, got %d", fn.DisplayName(), len(fn.Params), plural(len(fn.Params), "argument"), len(args))
	}
	if len(i.callStack) >= maxCallDepth {
		return nil, i.fail(n, "maximum call depth %d exceeded in %s", maxCallDepth, fn.DisplayName())
	}

	i.callStack = append(i.callStack, callSite{function: fn.DisplayName(), node: n})
	i.frames.PushCall()
	defer func() {
		i.frames.Pop()
		i.callStack = i.callStack[:len(i.callStack)-1]
	}()

	for idx, param := range fn.Params {
		i.frames.Define(param.Name, args[idx])
	}

	completion, err := i.execBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	switch completion.Kind {
	case Returned:
		if completion.Value == nil {
			return runtime.VoidValue{}, nil
		}
		return completion.Value, nil
	case Normal:
		return runtime.VoidValue{}, nil
	default:
		return nil, i.fail(n, "%s outside loop in %s", completion.Kind, fn.DisplayName())
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
