package builtins

import (
	"io"
	"strconv"
	"strings"

	"github.com/c0d3-dump/plang/pkg/runtime"
)

// Print writes every argument back to back followed by a newline.
func Print(ctx *runtime.BuiltinContext, args []runtime.Value) error {
	var b strings.Builder
	for _, arg := range args {
		writeValue(&b, arg)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(ctx.Stdout, b.String())
	return err
}

// Format renders a value the way print shows it.
func Format(v runtime.Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v runtime.Value) {
	switch val := v.(type) {
	case runtime.NumberValue:
		b.WriteString(runtime.FormatNumber(val.Val))
	case runtime.StringValue:
		b.WriteString(val.Val)
	case runtime.BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case *runtime.ListValue:
		if len(val.Elements) == 0 {
			b.WriteString("[ ]")
			return
		}
		b.WriteString("[ ")
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, el)
		}
		b.WriteString(" ]")
	case *runtime.FunctionValue:
		b.WriteString("<fn " + val.DisplayName() + ">")
	case runtime.BuiltinValue:
		b.WriteString("<builtin " + val.Name + ">")
	default:
		b.WriteString("<void>")
	}
}
