package interpreter

import (
	"bytes"
	"context"
	"testing"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

// testInterpreter is an interpreter whose print builtin writes into a buffer.
type testInterpreter struct {
	*Interpreter
	out *bytes.Buffer
}

func newTestInterpreter(t testing.TB) *testInterpreter {
	t.Helper()
	out := &bytes.Buffer{}
	interp := New()
	interp.SetOutput(out, out)
	err := interp.RegisterBuiltin(runtime.BuiltinValue{
		Name: "print",
		Impl: func(ctx *runtime.BuiltinContext, args []runtime.Value) error {
			for idx, arg := range args {
				if idx > 0 {
					ctx.Stdout.Write([]byte(" "))
				}
				ctx.Stdout.Write([]byte(describeValue(arg)))
			}
			ctx.Stdout.Write([]byte("\n"))
			return nil
		},
	})
	if err != nil {
		t.Fatalf("register print: %v", err)
	}
	return &testInterpreter{Interpreter: interp, out: out}
}

func (ti *testInterpreter) mustRun(t testing.TB, program *ast.Program) runtime.Value {
	t.Helper()
	val, err := ti.Run(context.Background(), program)
	if err != nil {
		t.Fatalf("run failed: %s", DescribeRuntimeError(err))
	}
	return val
}

func describeValue(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.NumberValue:
		return ast.Dump(ast.Num(val.Val))
	case runtime.StringValue:
		return val.Val
	case runtime.BoolValue:
		return ast.Dump(ast.Bool(val.Val))
	case *runtime.ListValue:
		elements := make([]ast.Expression, 0, len(val.Elements))
		for _, el := range val.Elements {
			elements = append(elements, ast.ID(describeValue(el)))
		}
		return ast.Dump(ast.List(elements...))
	default:
		return "<" + kindOf(v).String() + ">"
	}
}
