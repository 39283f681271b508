package runtime

import (
	"fmt"
	"sort"
)

// noParent marks a call frame: lookups never cross it.
const noParent = -1

type frame struct {
	vars   map[string]Value
	parent int
}

// Frames is the variable scope stack of a single run. Frames are addressed by
// index; each frame links to the frame it can see through, so entering a loop
// body or a call never copies a mapping.
type Frames struct {
	stack []frame
}

// NewFrames creates the stack with its top-level frame in place.
func NewFrames() *Frames {
	f := &Frames{}
	f.PushCall()
	return f
}

// Depth is the number of live frames.
func (f *Frames) Depth() int {
	return len(f.stack)
}

// PushCall opens a frame with a fresh variable set, as used for function calls.
func (f *Frames) PushCall() {
	f.stack = append(f.stack, frame{vars: make(map[string]Value), parent: noParent})
}

// PushBlock opens a frame that sees through to the current innermost frame, as
// used for loop bodies.
func (f *Frames) PushBlock() {
	f.stack = append(f.stack, frame{vars: make(map[string]Value), parent: len(f.stack) - 1})
}

// Pop discards the innermost frame and every binding introduced in it. The
// top-level frame is never popped.
func (f *Frames) Pop() {
	if len(f.stack) <= 1 {
		panic("runtime: pop of top-level frame")
	}
	f.stack[len(f.stack)-1] = frame{}
	f.stack = f.stack[:len(f.stack)-1]
}

// find locates the frame holding name, walking parent links from the innermost
// frame. It returns -1 when the name is not visible.
func (f *Frames) find(name string) int {
	for i := len(f.stack) - 1; i != noParent; i = f.stack[i].parent {
		if _, ok := f.stack[i].vars[name]; ok {
			return i
		}
	}
	return -1
}

// Lookup returns the nearest visible binding of name.
func (f *Frames) Lookup(name string) (Value, bool) {
	idx := f.find(name)
	if idx < 0 {
		return nil, false
	}
	return f.stack[idx].vars[name], true
}

// Declare binds name for Let and loop variables. A visible binding is overwritten
// where it lives, so a name that existed before a loop keeps its last value after
// the loop. Otherwise the binding is created in the innermost frame and goes away
// with it.
func (f *Frames) Declare(name string, value Value) {
	idx := f.find(name)
	if idx < 0 {
		idx = len(f.stack) - 1
	}
	f.stack[idx].vars[name] = value
}

// Define always binds in the innermost frame. Call parameters use it.
func (f *Frames) Define(name string, value Value) {
	f.stack[len(f.stack)-1].vars[name] = value
}

// Assign overwrites the nearest visible binding of name.
func (f *Frames) Assign(name string, value Value) error {
	idx := f.find(name)
	if idx < 0 {
		return fmt.Errorf("assignment to undeclared name '%s'", name)
	}
	f.stack[idx].vars[name] = value
	return nil
}

// Visible returns the names visible from the innermost frame in sorted order.
func (f *Frames) Visible() []string {
	seen := make(map[string]struct{})
	for i := len(f.stack) - 1; i != noParent; i = f.stack[i].parent {
		for name := range f.stack[i].vars {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
