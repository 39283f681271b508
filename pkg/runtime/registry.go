package runtime

import (
	"fmt"
	"sort"
)

// Registry holds the callables shared by every frame of a run: host builtins,
// fixed once the run starts, and user functions registered by declarations.
type Registry struct {
	builtins  map[string]BuiltinValue
	functions map[string]*FunctionValue
	sealed    bool
}

func NewRegistry() *Registry {
	return &Registry{
		builtins:  make(map[string]BuiltinValue),
		functions: make(map[string]*FunctionValue),
	}
}

// RegisterBuiltin adds or replaces a builtin. It fails once the registry is sealed.
func (r *Registry) RegisterBuiltin(b BuiltinValue) error {
	if r.sealed {
		return fmt.Errorf("builtin '%s' registered after program start", b.Name)
	}
	if b.Name == "" || b.Impl == nil {
		return fmt.Errorf("builtin requires a name and an implementation")
	}
	r.builtins[b.Name] = b
	return nil
}

// Seal freezes the builtin table.
func (r *Registry) Seal() {
	r.sealed = true
}

func (r *Registry) Builtin(name string) (BuiltinValue, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Declare registers fn under its name; redeclaration overwrites silently.
func (r *Registry) Declare(fn *FunctionValue) {
	r.functions[fn.Name] = fn
}

func (r *Registry) Function(name string) (*FunctionValue, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// BuiltinNames lists the builtins in sorted order.
func (r *Registry) BuiltinNames() []string {
	return sortedKeys(r.builtins)
}

// FunctionNames lists the user functions in sorted order.
func (r *Registry) FunctionNames() []string {
	return sortedKeys(r.functions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
