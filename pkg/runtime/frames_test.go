package runtime

import (
	"reflect"
	"testing"
)

func num(v float64) Value { return NumberValue{Val: v} }

func mustLookup(t *testing.T, f *Frames, name string) Value {
	t.Helper()
	v, ok := f.Lookup(name)
	if !ok {
		t.Fatalf("expected '%s' to be visible", name)
	}
	return v
}

func TestBlockFrameKeepsMutationOfOuterName(t *testing.T) {
	f := NewFrames()
	f.Declare("x", num(0))

	f.PushBlock()
	if err := f.Assign("x", num(5)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	f.Declare("fresh", num(1))
	f.Pop()

	if got := mustLookup(t, f, "x"); !Equal(got, num(5)) {
		t.Fatalf("x = %#v, want 5", got)
	}
	if _, ok := f.Lookup("fresh"); ok {
		t.Fatalf("name introduced in block leaked out")
	}
}

func TestDeclareInBlockOverwritesVisibleBinding(t *testing.T) {
	f := NewFrames()
	f.Declare("i", num(-1))
	f.PushBlock()
	f.Declare("i", num(3))
	f.Pop()
	if got := mustLookup(t, f, "i"); !Equal(got, num(3)) {
		t.Fatalf("i = %#v, want 3", got)
	}
}

func TestCallFrameIsolation(t *testing.T) {
	f := NewFrames()
	f.Declare("outer", num(1))

	f.PushCall()
	if _, ok := f.Lookup("outer"); ok {
		t.Fatalf("call frame should not see caller variables")
	}
	if err := f.Assign("outer", num(2)); err == nil {
		t.Fatalf("expected assign through call frame to fail")
	}
	f.Define("outer", num(9))
	f.Declare("local", num(3))
	f.PushBlock()
	if got := mustLookup(t, f, "outer"); !Equal(got, num(9)) {
		t.Fatalf("block inside call should see the parameter, got %#v", got)
	}
	f.Pop()
	f.Pop()

	if got := mustLookup(t, f, "outer"); !Equal(got, num(1)) {
		t.Fatalf("caller binding changed to %#v", got)
	}
	if _, ok := f.Lookup("local"); ok {
		t.Fatalf("call-local binding survived the call")
	}
	if f.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", f.Depth())
	}
}

func TestAssignUndeclared(t *testing.T) {
	f := NewFrames()
	err := f.Assign("ghost", num(1))
	if err == nil || err.Error() != "assignment to undeclared name 'ghost'" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVisibleNames(t *testing.T) {
	f := NewFrames()
	f.Declare("b", num(1))
	f.PushBlock()
	f.Declare("a", num(2))
	f.PushCall()
	f.Define("c", num(3))
	if got, want := f.Visible(), []string{"c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Visible() in call = %v, want %v", got, want)
	}
	f.Pop()
	if got, want := f.Visible(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Visible() = %v, want %v", got, want)
	}
}

func TestPopTopLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewFrames().Pop()
}
