package runtime

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/c0d3-dump/plang/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindVoid Kind = iota
	KindNumber
	KindString
	KindBool
	KindList
	KindFunction
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Values are immutable once
// built; lists are never mutated in place.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// VoidValue is the result of an expression that produced nothing, such as an
// assignment or a call to a function without a return value.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// FunctionValue is a user function. Name is empty for function literals.
type FunctionValue struct {
	Name   string
	Params []*ast.Identifier
	Body   ast.Block
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) DisplayName() string {
	if v.Name == "" {
		return "<anonymous>"
	}
	return v.Name
}

// BuiltinContext carries the host resources a builtin may touch.
type BuiltinContext struct {
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
}

// BuiltinFunc performs an effect. Builtins never hand a value back to the
// program; a returned error aborts the run.
type BuiltinFunc func(*BuiltinContext, []Value) error

type BuiltinValue struct {
	Name string
	Impl BuiltinFunc
}

func (v BuiltinValue) Kind() Kind { return KindBuiltin }

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// FormatNumber renders n in its shortest form. Infinities print as inf and
// -inf.
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// IsVoid reports whether v carries no value. A nil interface counts as void.
func IsVoid(v Value) bool {
	return v == nil || v.Kind() == KindVoid
}

// Equal compares two values structurally. Values of different kinds are never
// equal; functions compare by identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NumberValue:
		return av.Val == b.(NumberValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case VoidValue:
		return true
	case *ListValue:
		bv := b.(*ListValue)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *FunctionValue:
		return av == b.(*FunctionValue)
	case BuiltinValue:
		return av.Name == b.(BuiltinValue).Name
	default:
		return false
	}
}
