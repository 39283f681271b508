package interpreter

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/parser"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

func parse(t testing.TB, src string) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return program
}

func runSource(t testing.TB, src string) (runtime.Value, string) {
	t.Helper()
	ti := newTestInterpreter(t)
	val := ti.mustRun(t, parse(t, src))
	return val, ti.out.String()
}

func runSourceError(t testing.TB, src string) (*RuntimeError, string) {
	t.Helper()
	ti := newTestInterpreter(t)
	_, err := ti.Run(context.Background(), parse(t, src))
	if err == nil {
		t.Fatalf("expected runtime error for %q", src)
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T (%v)", err, err)
	}
	return rerr, ti.out.String()
}

func assertNumber(t testing.TB, v runtime.Value, want float64) {
	t.Helper()
	num, ok := v.(runtime.NumberValue)
	if !ok {
		t.Fatalf("expected number %v, got %#v", want, v)
	}
	if num.Val != want {
		t.Fatalf("got %v, want %v", num.Val, want)
	}
}

func TestEndToEndSum(t *testing.T) {
	program := ast.Prog(
		ast.Let("x", ast.Num(0)),
		ast.ForEach("i", ast.List(ast.Num(1), ast.Num(2), ast.Num(3)),
			ast.Expr(ast.Assign("x", ast.Bin("+", ast.ID("x"), ast.ID("i")))),
		),
		ast.Ret(ast.ID("x")),
	)
	ti := newTestInterpreter(t)
	assertNumber(t, ti.mustRun(t, program), 6)

	val, _ := runSource(t, "let x = 0\nloop (let i : [1,2,3]) { x = x + i }\nreturn x")
	assertNumber(t, val, 6)
}

func TestLoopScoping(t *testing.T) {
	val, _ := runSource(t, `
let total = 0
loop (let i : [1, 2]) {
  let doubled = i * 2
  total = total + doubled
}
return total`)
	assertNumber(t, val, 6)

	rerr, _ := runSourceError(t, `
loop (let i : [1]) { let inner = 1 }
print(inner)`)
	if rerr.Message != "undefined name 'inner'" {
		t.Fatalf("unexpected error: %v", rerr)
	}

	rerr, _ = runSourceError(t, "loop (let i : [1, 2]) { }\nprint(i)")
	if rerr.Message != "undefined name 'i'" {
		t.Fatalf("loop variable leaked: %v", rerr)
	}
}

func TestLoopVariableReusesOuterBinding(t *testing.T) {
	val, _ := runSource(t, "let i = 0\nloop (let i : [4, 5]) { }\nreturn i")
	assertNumber(t, val, 5)
}

func TestLetInsideLoopOverwritesOuterBinding(t *testing.T) {
	val, _ := runSource(t, "let x = 1\nloop (let i : [7]) { let x = i }\nreturn x")
	assertNumber(t, val, 7)
}

func TestBreakStopsLoop(t *testing.T) {
	val, out := runSource(t, `
loop (let i : [1, 2, 3]) {
  print(i)
  break
}
print("after")
return 0`)
	assertNumber(t, val, 0)
	if out != "1\nafter\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestUnboundedLoopRunsUntilBreak(t *testing.T) {
	val, _ := runSource(t, `
let n = 0
loop {
  n = n + 1
  if n == 5 { break }
}
return n`)
	assertNumber(t, val, 5)
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	_, out := runSource(t, `
loop (let i : [1, 2, 3, 4]) {
  if i % 2 == 0 { continue }
  print(i)
}`)
	if out != "1\n3\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestReturnPropagatesThroughBlocks(t *testing.T) {
	val, out := runSource(t, `
fn pick(cond) {
  if cond { return 1 }
  print("unreachable")
  return 2
}
return pick(true)`)
	assertNumber(t, val, 1)
	if out != "" {
		t.Fatalf("statements after return executed: %q", out)
	}

	val, _ = runSource(t, `
fn first(xs) {
  loop (let x : xs) {
    loop { return x * 10 }
  }
  return -1
}
return first([3, 4])`)
	assertNumber(t, val, 30)
}

func TestTopLevelReturnStopsRun(t *testing.T) {
	val, out := runSource(t, "print(1)\nreturn\nprint(2)")
	if !runtime.IsVoid(val) {
		t.Fatalf("expected void, got %#v", val)
	}
	if out != "1\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestCallArity(t *testing.T) {
	for _, src := range []string{
		"fn add(a, b) { return a + b }\nadd(1)",
		"fn add(a, b) { return a + b }\nadd(1, 2, 3)",
	} {
		rerr, _ := runSourceError(t, src)
		if !strings.HasPrefix(rerr.Message, "function add expects 2 arguments, got ") {
			t.Fatalf("unexpected error: %v", rerr)
		}
	}
}

func TestLiteralEvaluationIsIdempotent(t *testing.T) {
	ti := newTestInterpreter(t)
	for _, lit := range []ast.Expression{ast.Num(2.5), ast.Str("hi"), ast.Bool(true)} {
		first, err := ti.Evaluate(context.Background(), lit)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		for n := 0; n < 3; n++ {
			again, err := ti.Evaluate(context.Background(), lit)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if !runtime.Equal(first, again) {
				t.Fatalf("literal %s changed: %#v vs %#v", ast.Dump(lit), first, again)
			}
		}
	}
}

func TestFunctionCallsUseFreshScope(t *testing.T) {
	rerr, _ := runSourceError(t, `
let secret = 1
fn peek() { return secret }
peek()`)
	if rerr.Message != "undefined name 'secret'" {
		t.Fatalf("unexpected error: %v", rerr)
	}

	rerr, _ = runSourceError(t, `
fn set() { let local = 1 }
set()
print(local)`)
	if rerr.Message != "undefined name 'local'" {
		t.Fatalf("unexpected error: %v", rerr)
	}
}

func TestRecursionAndFunctionValues(t *testing.T) {
	val, _ := runSource(t, `
fn fib(n) {
  if n < 2 { return n }
  return fib(n - 1) + fib(n - 2)
}
return fib(10)`)
	assertNumber(t, val, 55)

	val, _ = runSource(t, `
let twice = fn (f, v) { return f(f(v)) }
fn inc(v) { return v + 1 }
return twice(inc, 1)`)
	assertNumber(t, val, 3)

	val, _ = runSource(t, "fn make() { return fn (v) { return v * 3 } }\nreturn make()(2)")
	assertNumber(t, val, 6)
}

func TestBuiltinsTakePriorityOverFunctions(t *testing.T) {
	_, out := runSource(t, `
fn print(x) { return x }
print("builtin")`)
	if out != "builtin\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestElifChain(t *testing.T) {
	_, out := runSource(t, `
fn classify(n) {
  if n < 0 { return "negative" } elif n == 0 { return "zero" } else { return "positive" }
}
print(classify(-1), classify(0), classify(2))`)
	if out != "negative zero positive\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestArithmeticAndLogic(t *testing.T) {
	cases := []struct {
		src  string
		want runtime.Value
	}{
		{"return 7 % 3", runtime.NumberValue{Val: 1}},
		{"return -7 % 3", runtime.NumberValue{Val: -1}},
		{"return 1 / 4", runtime.NumberValue{Val: 0.25}},
		{"return 2 + 3 * 4 - 1", runtime.NumberValue{Val: 13}},
		{"return 1 < 2 && 2 <= 2", runtime.BoolValue{Val: true}},
		{"return !(1 > 2) || false", runtime.BoolValue{Val: true}},
		{`return "a" == "a"`, runtime.BoolValue{Val: true}},
		{`return "a" != "b"`, runtime.BoolValue{Val: true}},
		{"return true == false", runtime.BoolValue{Val: false}},
		{"return [1, 2, 3].length", runtime.NumberValue{Val: 3}},
		{`return "héllo".length`, runtime.NumberValue{Val: 5}},
		{"return [10, 20][1]", runtime.NumberValue{Val: 20}},
		{`return "abc"[2]`, runtime.StringValue{Val: "c"}},
	}
	for _, tc := range cases {
		val, _ := runSource(t, tc.src)
		if !runtime.Equal(val, tc.want) {
			t.Fatalf("%s = %#v, want %#v", tc.src, val, tc.want)
		}
	}

	val, _ := runSource(t, "return 1 / 0")
	if num, ok := val.(runtime.NumberValue); !ok || !math.IsInf(num.Val, 1) {
		t.Fatalf("1 / 0 = %#v, want +Inf", val)
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		src     string
		message string
	}{
		{`return 1 + "a"`, "unsupported operation: number + string"},
		{`return "a" < "b"`, "unsupported operation: string < string"},
		{`return -"a"`, "unsupported operation: - string"},
		{"return !1", "unsupported operation: ! number"},
		{"if 1 { }", "if condition must be bool, got number"},
		{"loop (let i : 3) { }", "loop iterable must be list, got number"},
		{"ghost = 1", "assignment to undeclared name 'ghost'"},
		{"fn f() { }\nlet x = f()", "let x: initializer produced no value"},
		{"let x = 1\nx = print(1)", "x: assigned expression produced no value"},
		{"fn f() { }\nprint([f()])", "list element 0 produced no value"},
		{"nothing(1)", "undefined function 'nothing'"},
		{"let n = 3\nn()", "number is not callable"},
		{"return [1][1]", "index 1 out of range for list of length 1"},
		{"return [1][0.5]", "index must be an integral number, got 0.5"},
		{"return (1).size", "unknown member 'size' on number"},
	}
	for _, tc := range cases {
		rerr, _ := runSourceError(t, tc.src)
		if rerr.Message != tc.message {
			t.Fatalf("%q: error %q, want %q", tc.src, rerr.Message, tc.message)
		}
	}
}

func TestBreakOutsideLoopAtRuntime(t *testing.T) {
	ti := newTestInterpreter(t)
	_, err := ti.Run(context.Background(), ast.Prog(ast.Brk()))
	if err == nil || !strings.Contains(err.Error(), "break outside loop") {
		t.Fatalf("unexpected error: %v", err)
	}

	ti = newTestInterpreter(t)
	program := ast.Prog(
		ast.Fn("f", nil, ast.Cont()),
		ast.ForEach("i", ast.List(ast.Num(1)), ast.Expr(ast.Call("f"))),
	)
	_, err = ti.Run(context.Background(), program)
	if err == nil || !strings.Contains(err.Error(), "continue outside loop in f") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDescribeRuntimeErrorIncludesCallStack(t *testing.T) {
	rerr, _ := runSourceError(t, `fn inner() {
  return missing
}
fn outer() {
  return inner()
}
outer()`)
	want := "runtime: 2:10 undefined name 'missing'\n" +
		"note: inner called from outer at 5:10\n" +
		"note: outer called from top level at 7:1"
	if got := DescribeRuntimeError(rerr); got != want {
		t.Fatalf("DescribeRuntimeError =\n%s\nwant\n%s", got, want)
	}
	if got := DescribeRuntimeError(errors.New("boom")); got != "runtime: boom" {
		t.Fatalf("plain error rendered as %q", got)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ti := newTestInterpreter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ti.Run(ctx, parse(t, "loop { }"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ti.Frames().Depth() != 1 {
		t.Fatalf("frames not unwound: depth %d", ti.Frames().Depth())
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	ti := newTestInterpreter(t)
	ti.mustRun(t, parse(t, "let x = 2\nfn sq(v) { return v * v }"))
	val := ti.mustRun(t, parse(t, "return sq(x)"))
	assertNumber(t, val, 4)

	if _, err := ti.Run(context.Background(), parse(t, "return undefined_name")); err == nil {
		t.Fatalf("expected error")
	}
	val = ti.mustRun(t, parse(t, "x = x + 1\nreturn x"))
	assertNumber(t, val, 3)
}

func TestRegisterBuiltinAfterRunFails(t *testing.T) {
	ti := newTestInterpreter(t)
	ti.mustRun(t, ast.Prog())
	err := ti.RegisterBuiltin(runtime.BuiltinValue{
		Name: "late",
		Impl: func(*runtime.BuiltinContext, []runtime.Value) error { return nil },
	})
	if err == nil {
		t.Fatalf("expected registration after run to fail")
	}
}

func TestBuiltinErrorsBecomeRuntimeErrors(t *testing.T) {
	ti := newTestInterpreter(t)
	boom := errors.New("disk full")
	err := ti.RegisterBuiltin(runtime.BuiltinValue{
		Name: "fail",
		Impl: func(*runtime.BuiltinContext, []runtime.Value) error { return boom },
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err = ti.Run(context.Background(), parse(t, "fail()"))
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Message != "fail: disk full" || !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChainedAssignmentIsRejectedBeforeRunning(t *testing.T) {
	ti := newTestInterpreter(t)
	ti.mustRun(t, parse(t, "let a = 0\nlet b = 0"))
	if _, err := parser.ParseSource("a = b = 1\nreturn a"); err == nil {
		t.Fatalf("expected chained assignment to be a parse error")
	}
	assertNumber(t, ti.mustRun(t, parse(t, "return b")), 0)
	assertNumber(t, ti.mustRun(t, parse(t, "a = 2\nb = a\nreturn b")), 2)
}

func TestCallDepthLimit(t *testing.T) {
	ti := newTestInterpreter(t)
	_, err := ti.Run(context.Background(), parse(t, "fn f(n) { return f(n + 1) }\nf(0)"))
	if err == nil {
		t.Fatalf("expected unbounded recursion to fail")
	}
	if !strings.Contains(err.Error(), "maximum call depth 10000 exceeded in f") {
		t.Fatalf("unexpected error: %v", err)
	}
	if depth := ti.Frames().Depth(); depth != 1 {
		t.Fatalf("frames depth after error = %d, want 1", depth)
	}
	assertNumber(t, ti.mustRun(t, parse(t, "fn g(n) { return n }\nreturn g(3)")), 3)
}
