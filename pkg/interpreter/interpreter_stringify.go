package interpreter

import (
	"fmt"
	"strings"

	"blur/interpreter-go/pkg/runtime"
)

func valueToString(val runtime.Value) string {
	return runtime.Format(val)
}

// FormatValue renders a value the way print shows it.
func FormatValue(val runtime.Value) string {
	return valueToString(val)
}

// String renders an inspection line such as `x = 6 (history: 2 values)`.
func (v VariableInfo) String() string {
	if v.Type.IsArray() {
		return fmt.Sprintf("%s: %s", v.Name, v.Type)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s (history: %d %s", v.Name, valueToString(v.Value), v.Samples, plural(v.Samples, "value", "values"))
	if v.Sharp {
		b.WriteString(", sharp")
	}
	b.WriteString(")")
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
