// Package interpreter executes plang programs by walking the AST produced by the
// parser. Variables live in a runtime.Frames stack; builtins and user functions
// live in a runtime.Registry shared by every frame.
package interpreter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

// maxCallDepth bounds user-function recursion so runaway scripts fail with a
// diagnostic instead of exhausting the Go stack.
const maxCallDepth = 10000

// CompletionKind tags how a statement finished.
type CompletionKind int

const (
	Normal CompletionKind = iota
	Returned
	Broken
	Continued
)

func (k CompletionKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Returned:
		return "return"
	case Broken:
		return "break"
	case Continued:
		return "continue"
	default:
		return fmt.Sprintf("completion_%d", int(k))
	}
}

// Completion is the result of executing a statement. Value is only meaningful
// for Returned.
type Completion struct {
	Kind  CompletionKind
	Value runtime.Value
}

var normal = Completion{Kind: Normal}

// Interpreter drives evaluation of plang AST nodes. State (variables and
// functions) persists across Run calls, which is what the REPL relies on.
type Interpreter struct {
	registry  *runtime.Registry
	frames    *runtime.Frames
	callStack []callSite
	stdout    io.Writer
	stderr    io.Writer

	// ctx is the context of the Run in progress.
	ctx context.Context
}

type callSite struct {
	function string
	node     *ast.CallExpression
}

// New returns an interpreter with no builtins writing to the process stdio.
func New() *Interpreter {
	return &Interpreter{
		registry: runtime.NewRegistry(),
		frames:   runtime.NewFrames(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		ctx:      context.Background(),
	}
}

// SetOutput redirects what builtins see as stdout and stderr.
func (i *Interpreter) SetOutput(stdout, stderr io.Writer) {
	i.stdout = stdout
	i.stderr = stderr
}

// RegisterBuiltin adds a host builtin. Builtins must be registered before the
// first Run.
func (i *Interpreter) RegisterBuiltin(b runtime.BuiltinValue) error {
	return i.registry.RegisterBuiltin(b)
}

// Registry exposes the shared callable table.
func (i *Interpreter) Registry() *runtime.Registry {
	return i.registry
}

// Frames exposes the variable scopes.
func (i *Interpreter) Frames() *runtime.Frames {
	return i.frames
}

// Run executes the program's top-level statements in order. When a top-level
// return is reached the run stops and its value is returned; otherwise the
// result is runtime.VoidValue.
func (i *Interpreter) Run(ctx context.Context, program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return runtime.VoidValue{}, nil
	}
	done := i.begin(ctx)
	defer done()

	completion, err := i.execBlock(program.Statements)
	if err != nil {
		return nil, err
	}
	switch completion.Kind {
	case Normal:
		return runtime.VoidValue{}, nil
	case Returned:
		return completion.Value, nil
	default:
		return nil, i.fail(nil, "%s outside loop", completion.Kind)
	}
}

// Evaluate computes a single expression against the top-level state.
func (i *Interpreter) Evaluate(ctx context.Context, expr ast.Expression) (runtime.Value, error) {
	done := i.begin(ctx)
	defer done()
	return i.evaluate(expr)
}

func (i *Interpreter) begin(ctx context.Context) func() {
	if ctx == nil {
		ctx = context.Background()
	}
	i.registry.Seal()
	prev := i.ctx
	i.ctx = ctx
	return func() {
		i.ctx = prev
		i.callStack = i.callStack[:0]
	}
}

func (i *Interpreter) builtinContext() *runtime.BuiltinContext {
	return &runtime.BuiltinContext{Context: i.ctx, Stdout: i.stdout, Stderr: i.stderr}
}
