package builtins

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/c0d3-dump/plang/pkg/runtime"
)

// CommandRunner launches an external process and waits for it.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner runs commands with os/exec. Stdin defaults to the process stdin.
type ExecRunner struct {
	Stdin io.Reader
}

func (r ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Stdin = r.Stdin
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	c.Stdout = stdout
	c.Stderr = stderr
	return c.Run()
}

// cmd runs its first argument as a program with the rest as arguments. A
// command that cannot be launched or exits non-zero is reported on stderr and
// the script carries on.
func (t *Table) cmd(ctx *runtime.BuiltinContext, args []runtime.Value) error {
	if len(args) == 0 {
		return fmt.Errorf("expected a command name")
	}
	words := make([]string, 0, len(args))
	for idx, arg := range args {
		word, err := commandWord(arg)
		if err != nil {
			return fmt.Errorf("argument %d: %w", idx+1, err)
		}
		words = append(words, word)
	}
	runCtx := ctx.Context
	if runCtx == nil {
		runCtx = context.Background()
	}
	if err := t.runner.Run(runCtx, words[0], words[1:], ctx.Stdout, ctx.Stderr); err != nil {
		fmt.Fprintf(ctx.Stderr, "cmd: %s: %v\n", words[0], err)
	}
	return nil
}

func commandWord(v runtime.Value) (string, error) {
	switch val := v.(type) {
	case runtime.StringValue:
		return val.Val, nil
	case runtime.NumberValue:
		return runtime.FormatNumber(val.Val), nil
	case runtime.BoolValue:
		return strconv.FormatBool(val.Val), nil
	default:
		return "", fmt.Errorf("cannot pass %s to a command", v.Kind())
	}
}
