package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindChar
	KindString
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the transient result of evaluating one expression. Values are
// never stored; variables hold a HistoryValue instead.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

//-----------------------------------------------------------------------------
// Coercions
//-----------------------------------------------------------------------------

// ToFloat is the numeric coercion applied by arithmetic, comparison and
// numeric pushes.
func ToFloat(v Value) float64 {
	switch val := v.(type) {
	case IntValue:
		return float64(val.Val)
	case FloatValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case CharValue:
		return float64(val.Val)
	default:
		return 0
	}
}

// Truthy is the boolean coercion used by conditions, &&, || and !.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case CharValue:
		return val.Val != 0
	default:
		return false
	}
}

// Format renders a value in its natural text form, as print shows it.
func Format(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return formatFloat(val.Val)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case CharValue:
		return string(val.Val)
	case StringValue:
		return val.Val
	case VoidValue, nil:
		return "void"
	default:
		return fmt.Sprintf("<%v>", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
