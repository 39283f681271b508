package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/lexer"
	"github.com/c0d3-dump/plang/pkg/token"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return program
}

func assertDump(t *testing.T, src, want string) {
	t.Helper()
	program := mustParse(t, src)
	if got := ast.Dump(program); got != want {
		t.Fatalf("parse %q\n got: %s\nwant: %s", src, got, want)
	}
}

func mustFail(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	return perr
}

func TestParseOperatorPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(program (+ 1 (* 2 3)))"},
		{"(1 + 2) * 3", "(program (* (+ 1 2) 3))"},
		{"1 - 2 - 3", "(program (- (- 1 2) 3))"},
		{"10 % 4 / 2", "(program (/ (% 10 4) 2))"},
		{"-2 * 3", "(program (* (- 2) 3))"},
		{"!a && b || c", "(program (|| (&& (! a) b) c))"},
		{"a < b == c > d", "(program (== (< a b) (> c d)))"},
		{"x <= 1 && y >= 2", "(program (&& (<= x 1) (>= y 2)))"},
		{"a = b || c", "(program (= a (|| b c)))"},
		{"x = x + 1", "(program (= x (+ x 1)))"},
	}
	for _, tc := range cases {
		assertDump(t, tc.src, tc.want)
	}
}

func TestParsePostfixForms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`print("hi", 1)`, `(program (call print "hi" 1))`},
		{"f()", "(program (call f))"},
		{"xs.length + 1", "(program (+ (. xs length) 1))"},
		{"xs[0][1]", "(program (index (index xs 0) 1))"},
		{"make()(2)", "(program (call (call make) 2))"},
		{"[1, [2, 3], ]", "(program [1 [2 3]])"},
		{"[]", "(program [])"},
		{"-xs[0]", "(program (- (index xs 0)))"},
	}
	for _, tc := range cases {
		assertDump(t, tc.src, tc.want)
	}
}

func TestParseStatements(t *testing.T) {
	src := `let x = 0
fn add(a, b) { return a + b }
let twice = fn (v) { return v * 2 }
loop (let i : [1, 2, 3]) {
  if i == 2 { continue }
  x = add(x, i)
}
loop { break }
return x`
	want := "(program (let x 0) (fn add (a b) {(return (+ a b))}) " +
		"(let twice (fn (v) {(return (* v 2))})) " +
		"(loop i : [1 2 3] {(if (== i 2) {(continue)}) (= x (call add x i))}) " +
		"(loop {(break)}) (return x))"
	assertDump(t, src, want)
}

func TestParseElifChain(t *testing.T) {
	src := `if x == 1 { a } elif x == 2 { b } elif x == 3 { c } else { d }`
	want := "(program (if (== x 1) {a} {(if (== x 2) {b} {(if (== x 3) {c} {d})})}))"
	assertDump(t, src, want)
}

func TestParseIfConditionStopsAtBrace(t *testing.T) {
	assertDump(t, "if ok { print(1) }", "(program (if ok {(call print 1)}))")
	assertDump(t, "if f(x) && y { }", "(program (if (&& (call f x) y) {}))")
}

func TestParseReturnValueMustStartOnSameLine(t *testing.T) {
	assertDump(t, "fn f() { return\nprint(1) }", "(program (fn f () {(return) (call print 1)}))")
	assertDump(t, "fn f() { return }", "(program (fn f () {(return)}))")
	assertDump(t, "fn f() { return -1 }", "(program (fn f () {(return (- 1))}))")
}

func TestParseCommentsAndSemicolons(t *testing.T) {
	src := "let a = 1; -- first\n-- whole line\nlet b = a;;"
	assertDump(t, src, "(program (let a 1) (let b a))")
}

func TestParseRecordsPositions(t *testing.T) {
	program := mustParse(t, "let x = 1\n  print(x)")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	if pos := program.Statements[0].Pos(); pos != (token.Position{Line: 1, Column: 1}) {
		t.Fatalf("let position = %s", pos)
	}
	stmt, ok := program.Statements[1].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Statements[1])
	}
	call := stmt.Expression.(*ast.CallExpression)
	if pos := call.Callee.Pos(); pos != (token.Position{Line: 2, Column: 3}) {
		t.Fatalf("callee position = %s", pos)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	perr := mustFail(t, "1 + 2 = 3")
	if perr.Kind != UnexpectedToken || !strings.Contains(perr.Message, "invalid assignment target") {
		t.Fatalf("unexpected error: %v", perr)
	}
	if !perr.Token.Is(token.Assign) {
		t.Fatalf("error token = %s, want '='", perr.Token)
	}
}

func TestParseRejectsChainedAssignment(t *testing.T) {
	perr := mustFail(t, "a = b = 1 + 2")
	if !strings.Contains(perr.Message, "invalid assignment target") {
		t.Fatalf("unexpected error: %v", perr)
	}
	if perr.Token.Pos != (token.Position{Line: 1, Column: 7}) {
		t.Fatalf("error position = %s, want 1:7", perr.Token.Pos)
	}
}

func TestParseRejectsBreakOutsideLoop(t *testing.T) {
	mustFail(t, "break")
	mustFail(t, "continue")
	perr := mustFail(t, "loop { fn f() { break } }")
	if !strings.Contains(perr.Message, "break outside loop") {
		t.Fatalf("unexpected error: %v", perr)
	}
	mustParse(t, "fn f() { loop { if true { break } } }")
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src     string
		message string
	}{
		{"let = 3", "expected identifier"},
		{"let x 3", "expected '='"},
		{"if x { print(1)", "expected '}'"},
		{"print(1, 2", "expected ',' or ')'"},
		{"loop (i : xs) { }", "expected 'let'"},
		{"fn f(a b) { }", "expected ',' or ')' in parameter list"},
		{"}", "expected expression"},
		{"x & y", "expected expression"},
	}
	for _, tc := range cases {
		perr := mustFail(t, tc.src)
		if !strings.Contains(perr.Error(), tc.message) {
			t.Fatalf("parse %q: error %q does not mention %q", tc.src, perr.Error(), tc.message)
		}
	}
}

func TestParseErrorFormatting(t *testing.T) {
	perr := mustFail(t, "let x =\n  )")
	want := "parser: 2:3: unexpected token ')': expected expression"
	if perr.Error() != want {
		t.Fatalf("Error() = %q, want %q", perr.Error(), want)
	}
	if perr.Location() != (token.Position{Line: 2, Column: 3}) {
		t.Fatalf("Location() = %s", perr.Location())
	}
}

func TestParserNextIsIncremental(t *testing.T) {
	p := New(lexer.Stream("let a = 1 print(a)"))
	first, err := p.Next()
	if err != nil || first == nil {
		t.Fatalf("first statement: %v %v", first, err)
	}
	second, err := p.Next()
	if err != nil || second == nil {
		t.Fatalf("second statement: %v %v", second, err)
	}
	done, err := p.Next()
	if err != nil || done != nil {
		t.Fatalf("expected end of input, got %v %v", done, err)
	}
}

func TestIsIncomplete(t *testing.T) {
	_, err := ParseSource("fn f() {\n  print(1)")
	if !IsIncomplete(err) {
		t.Fatalf("expected incomplete input, got %v", err)
	}
	_, err = ParseSource("let = 1")
	if IsIncomplete(err) {
		t.Fatalf("malformed input reported as incomplete: %v", err)
	}
	if IsIncomplete(nil) {
		t.Fatalf("nil error reported as incomplete")
	}
}
