// Package builtins provides the host functions scripts can call by name: print
// and cmd.
package builtins

import (
	"fmt"

	"github.com/c0d3-dump/plang/pkg/runtime"
)

// Registrar accepts builtins; *interpreter.Interpreter satisfies it.
type Registrar interface {
	RegisterBuiltin(runtime.BuiltinValue) error
}

// Table is the dispatch table of host builtins.
type Table struct {
	runner CommandRunner
}

// New builds a table whose cmd builtin launches processes through runner. A nil
// runner selects ExecRunner.
func New(runner CommandRunner) *Table {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Table{runner: runner}
}

// Builtins lists the table entries in registration order.
func (t *Table) Builtins() []runtime.BuiltinValue {
	return []runtime.BuiltinValue{
		{Name: "print", Impl: Print},
		{Name: "cmd", Impl: t.cmd},
	}
}

// Register installs every builtin of the table into r.
func (t *Table) Register(r Registrar) error {
	for _, b := range t.Builtins() {
		if err := r.RegisterBuiltin(b); err != nil {
			return fmt.Errorf("register %s: %w", b.Name, err)
		}
	}
	return nil
}

// Register installs the default builtins, with cmd backed by runner.
func Register(r Registrar, runner CommandRunner) error {
	return New(runner).Register(r)
}
