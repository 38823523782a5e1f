package runtime

import (
	"strings"
	"unicode/utf8"

	"blur/interpreter-go/pkg/ast"
)

// HistoryValue is the persistent cell behind a variable or array element. It
// keeps every sample ever pushed and derives the observable Value on demand.
//
// Only the sample storage that matches the type tag is populated: numeric
// samples for int/float/char, boolean samples for bool, and one independent
// rune list per character position for strings.
type HistoryValue struct {
	typ     ast.Type
	numeric []float64
	bools   []bool
	chars   [][]rune
	sharp   bool
}

// NewHistoryValue returns an empty accumulating cell.
func NewHistoryValue(typ ast.Type) *HistoryValue {
	return &HistoryValue{typ: typ}
}

// NewSharpHistoryValue returns a cell that keeps at most one sample: every
// push replaces what was there.
func NewSharpHistoryValue(typ ast.Type) *HistoryValue {
	return &HistoryValue{typ: typ, sharp: true}
}

func (h *HistoryValue) Type() ast.Type { return h.typ }

func (h *HistoryValue) Sharp() bool { return h.sharp }

// Len reports the number of samples in the storage selected by the type tag.
// For strings it is the longest per-position history.
func (h *HistoryValue) Len() int {
	switch h.typ.Kind {
	case ast.TypeBool:
		return len(h.bools)
	case ast.TypeString:
		longest := 0
		for _, pos := range h.chars {
			if len(pos) > longest {
				longest = len(pos)
			}
		}
		return longest
	default:
		return len(h.numeric)
	}
}

// Samples returns a copy of the numeric history, oldest first.
func (h *HistoryValue) Samples() []float64 {
	return append([]float64(nil), h.numeric...)
}

// BoolSamples returns a copy of the boolean history, oldest first.
func (h *HistoryValue) BoolSamples() []bool {
	return append([]bool(nil), h.bools...)
}

// PositionSamples returns a copy of the character history at one string
// position, oldest first.
func (h *HistoryValue) PositionSamples(pos int) []rune {
	if pos < 0 || pos >= len(h.chars) {
		return nil
	}
	return append([]rune(nil), h.chars[pos]...)
}

// Positions reports how many string positions have ever been touched.
func (h *HistoryValue) Positions() int { return len(h.chars) }

func (h *HistoryValue) Push(sample float64) {
	if h.sharp {
		h.numeric = h.numeric[:0]
	}
	h.numeric = append(h.numeric, sample)
}

func (h *HistoryValue) PushBool(sample bool) {
	if h.sharp {
		h.bools = h.bools[:0]
	}
	h.bools = append(h.bools, sample)
}

// PushString appends each character of text to the history of its position.
// A space leaves its position untouched, so a narrower or gappy string only
// blurs the positions it actually covers.
func (h *HistoryValue) PushString(text string) {
	if h.sharp {
		h.chars = h.chars[:0]
	}
	pos := 0
	for _, r := range text {
		if r != ' ' {
			for len(h.chars) <= pos {
				h.chars = append(h.chars, nil)
			}
			h.chars[pos] = append(h.chars[pos], r)
		}
		pos++
	}
}

// PushStringRepeated records text as n separate samples.
func (h *HistoryValue) PushStringRepeated(text string, n int) {
	for i := 0; i < n; i++ {
		h.PushString(text)
	}
}

// Raw is the weighted average of the numeric history with no type-specific
// rounding. Increments and compound assignments build the next sample on it.
func (h *HistoryValue) Raw(decay float64) float64 {
	return WeightedAverage(h.numeric, decay)
}

// Get projects the history into a Value using the current decay.
func (h *HistoryValue) Get(decay float64) Value {
	switch h.typ.Kind {
	case ast.TypeInt:
		if len(h.numeric) == 0 {
			return IntValue{Val: 0}
		}
		return IntValue{Val: int64(ceilSample(h.Raw(decay)))}
	case ast.TypeFloat:
		return FloatValue{Val: h.Raw(decay)}
	case ast.TypeBool:
		if len(h.bools) == 0 {
			return BoolValue{Val: false}
		}
		ratio := weightedMean(len(h.bools), decay, func(i int) float64 {
			if h.bools[i] {
				return 1
			}
			return 0
		})
		return BoolValue{Val: ratio >= 0.5}
	case ast.TypeChar:
		if len(h.numeric) == 0 {
			return CharValue{Val: 0}
		}
		r := rune(ceilSample(h.Raw(decay)))
		if !utf8.ValidRune(r) {
			r = 0
		}
		return CharValue{Val: r}
	case ast.TypeString:
		return StringValue{Val: h.projectString(decay)}
	default:
		return VoidValue{}
	}
}

func (h *HistoryValue) projectString(decay float64) string {
	var b strings.Builder
	for _, pos := range h.chars {
		if len(pos) == 0 {
			b.WriteRune(' ')
			continue
		}
		avg := weightedMean(len(pos), decay, func(i int) float64 { return float64(pos[i]) })
		r := rune(ceilSample(avg))
		if r <= 0 || !utf8.ValidRune(r) {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Clone deep-copies the cell, sharp flag and every sample list included.
func (h *HistoryValue) Clone() *HistoryValue {
	out := &HistoryValue{
		typ:     h.typ,
		numeric: append([]float64(nil), h.numeric...),
		bools:   append([]bool(nil), h.bools...),
		sharp:   h.sharp,
	}
	if len(h.chars) > 0 {
		out.chars = make([][]rune, len(h.chars))
		for i, pos := range h.chars {
			out.chars[i] = append([]rune(nil), pos...)
		}
	}
	return out
}

// Store pushes an evaluated value into the cell according to its type tag:
// bool cells record truthiness, string cells record text (a char counts as a
// one-character string, other kinds leave the history untouched), and every
// other cell records the numeric coercion.
func (h *HistoryValue) Store(v Value) {
	switch h.typ.Kind {
	case ast.TypeBool:
		h.PushBool(Truthy(v))
	case ast.TypeString:
		switch s := v.(type) {
		case StringValue:
			h.PushString(s.Val)
		case CharValue:
			h.PushString(string(s.Val))
		}
	default:
		h.Push(ToFloat(v))
	}
}
