package interpreter

import (
	"fmt"
	"strconv"

	"loa/interpreter-go/pkg/runtime"
)

func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.NilValue:
		return false
	case runtime.NumberValue:
		return v.Val != 0
	default:
		return true
	}
}

// FormatValue renders a value the way print displays it. The REPL uses
// it to echo expression results.
func FormatValue(val runtime.Value) string {
	return valueToString(val)
}

// valueToString renders a value the way print displays it. Numbers use
// the shortest decimal representation, so 14.0 prints as "14".
func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return v.Val
	case runtime.NumberValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NilValue:
		return "nil"
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fun %s>", v.Declaration.Name.Name)
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}
