package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/token"
)

// CallFrame records one active user-function call at the time of an error.
type CallFrame struct {
	Function string
	Pos      token.Position
}

// RuntimeError is a failed evaluation. Node is where it was detected and
// CallStack lists active calls, outermost first.
type RuntimeError struct {
	Message   string
	Node      ast.Node
	CallStack []CallFrame
	Err       error
}

func (e *RuntimeError) Error() string {
	if loc := e.Location(); loc.Line > 0 {
		return fmt.Sprintf("runtime: %s %s", loc, e.Message)
	}
	return "runtime: " + e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Location reports the source position of the failing node, if known.
func (e *RuntimeError) Location() token.Position {
	if e.Node == nil {
		return token.Position{}
	}
	return e.Node.Pos()
}

// DescribeRuntimeError renders err with one note per active call, innermost
// first. Errors that are not runtime errors are rendered as plain messages.
func DescribeRuntimeError(err error) string {
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		message := strings.TrimSpace(err.Error())
		if strings.HasPrefix(message, "runtime:") {
			return message
		}
		return "runtime: " + message
	}
	var b strings.Builder
	b.WriteString(rerr.Error())
	for idx := len(rerr.CallStack) - 1; idx >= 0; idx-- {
		caller := "top level"
		if idx > 0 {
			caller = rerr.CallStack[idx-1].Function
		}
		frame := rerr.CallStack[idx]
		fmt.Fprintf(&b, "\nnote: %s called from %s at %s", frame.Function, caller, frame.Pos)
	}
	return b.String()
}

func (i *Interpreter) fail(node ast.Node, format string, args ...any) error {
	return &RuntimeError{
		Message:   fmt.Sprintf(format, args...),
		Node:      node,
		CallStack: i.snapshotCallStack(),
	}
}

// wrap turns a host error into a RuntimeError. A cause that is already a
// RuntimeError is returned unchanged.
func (i *Interpreter) wrap(node ast.Node, err error, prefix string) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	message := err.Error()
	if prefix != "" {
		message = prefix + ": " + message
	}
	return &RuntimeError{
		Message:   message,
		Node:      node,
		CallStack: i.snapshotCallStack(),
		Err:       err,
	}
}

func (i *Interpreter) snapshotCallStack() []CallFrame {
	if len(i.callStack) == 0 {
		return nil
	}
	frames := make([]CallFrame, len(i.callStack))
	for idx, site := range i.callStack {
		frames[idx] = CallFrame{Function: site.function, Pos: site.node.Pos()}
	}
	return frames
}
