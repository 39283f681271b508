package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/builtins"
	"github.com/c0d3-dump/plang/pkg/interpreter"
	"github.com/c0d3-dump/plang/pkg/parser"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

const (
	replBanner     = cliToolVersion + " (type :help for commands, :quit to exit)"
	continuePrompt = ".. "
)

// session keeps interpreter state alive across REPL inputs.
type session struct {
	interp *interpreter.Interpreter
	stdout io.Writer
	stderr io.Writer
}

func newSession(stdout, stderr io.Writer) (*session, error) {
	interp, err := newInterpreter()
	if err != nil {
		return nil, err
	}
	interp.SetOutput(stdout, stderr)
	return &session{interp: interp, stdout: stdout, stderr: stderr}, nil
}

// eval runs one complete input. A lone expression echoes its value; statements
// run silently unless a top-level return produces one.
func (s *session) eval(ctx context.Context, src string) {
	program, err := parser.ParseSource(src)
	if err != nil {
		reportParseError(s.stderr, "", err)
		return
	}

	var result runtime.Value
	if expr, ok := echoExpression(program); ok {
		result, err = s.interp.Evaluate(ctx, expr)
	} else {
		result, err = s.interp.Run(ctx, program)
	}
	if err != nil {
		reportRuntimeError(s.stderr, "", err)
		return
	}
	if result != nil && !runtime.IsVoid(result) {
		fmt.Fprintln(s.stdout, builtins.Format(result))
	}
}

// command handles a ':' directive and reports whether the session should end.
func (s *session) command(line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.stdout, ":vars        list visible variables")
		fmt.Fprintln(s.stdout, ":fns         list declared functions and builtins")
		fmt.Fprintln(s.stdout, ":ast <src>   show the syntax tree of src")
		fmt.Fprintln(s.stdout, ":quit        leave the session")
	case ":vars":
		for _, name := range s.interp.Frames().Visible() {
			value, _ := s.interp.Frames().Lookup(name)
			fmt.Fprintf(s.stdout, "%s = %s\n", name, builtins.Format(value))
		}
	case ":fns":
		registry := s.interp.Registry()
		for _, name := range registry.FunctionNames() {
			fmt.Fprintf(s.stdout, "fn %s\n", name)
		}
		for _, name := range registry.BuiltinNames() {
			fmt.Fprintf(s.stdout, "builtin %s\n", name)
		}
	case ":ast":
		program, err := parser.ParseSource(arg)
		if err != nil {
			reportParseError(s.stderr, "", err)
			break
		}
		fmt.Fprintln(s.stdout, ast.Dump(program))
	default:
		fmt.Fprintf(s.stdout, "unknown command %s. Type :help for a list.\n", name)
	}
	return false
}

// echoExpression returns the expression of a program made of one bare
// expression statement. Assignments are excluded so they stay silent.
func echoExpression(program *ast.Program) (ast.Expression, bool) {
	if len(program.Statements) != 1 {
		return nil, false
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	if _, isAssign := stmt.Expression.(*ast.AssignmentExpression); isAssign {
		return nil, false
	}
	return stmt.Expression, true
}

func (c *cli) replEntry(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "plang repl takes no arguments")
		return 1
	}
	sess, err := newSession(os.Stdout, os.Stderr)
	if err != nil {
		reportError(err)
		return 1
	}
	fmt.Fprintln(os.Stdout, replBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	history := c.cfg.REPL.History
	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), 0o755); err != nil {
			c.logger.Printf("history: %v", err)
			return
		}
		f, err := os.Create(history)
		if err != nil {
			c.logger.Printf("history: %v", err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	prompt := c.cfg.REPL.Prompt
	for {
		src, ok := readByParseProbe(ln, prompt, continuePrompt)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			if sess.command(src) {
				return 0
			}
			continue
		}

		ctx, stop := signalContext()
		sess.eval(ctx, src)
		stop()
	}
}

// readByParseProbe keeps reading lines while the buffered input only fails to
// parse because it ended early. The second result is false at end of input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := ln.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseSource(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
