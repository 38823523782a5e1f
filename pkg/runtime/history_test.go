package runtime

import (
	"math"
	"testing"

	"blur/interpreter-go/pkg/ast"
)

func TestRawIsArithmeticMeanAtFullDecay(t *testing.T) {
	cases := [][]float64{
		{5},
		{5, 6},
		{1, 2, 3, 4, 10},
		{-3, 7.5, 0, 12.25},
	}
	for idx, samples := range cases {
		h := NewHistoryValue(ast.Simple(ast.TypeFloat))
		sum := 0.0
		for _, s := range samples {
			h.Push(s)
			sum += s
		}
		want := sum / float64(len(samples))
		if got := h.Raw(1.0); math.Abs(got-want) > 1e-12 {
			t.Fatalf("case %d: expected mean %v, got %v", idx, want, got)
		}
	}
}

func TestNewestSampleCarriesLargestWeight(t *testing.T) {
	const n = 6
	for _, decay := range []float64{0, 0.25, 0.5, 0.9, 0.999} {
		newest := oneHotAverage(n, n-1, decay)
		for pos := 0; pos < n-1; pos++ {
			if other := oneHotAverage(n, pos, decay); other >= newest {
				t.Fatalf("decay %v: sample %d weighs %v, newest weighs %v", decay, pos, other, newest)
			}
		}
	}
}

// oneHotAverage measures the normalised weight given to position hot.
func oneHotAverage(n, hot int, decay float64) float64 {
	samples := make([]float64, n)
	samples[hot] = 1
	return WeightedAverage(samples, decay)
}

func TestZeroDecayKeepsOnlyNewest(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeFloat))
	for _, s := range []float64{3, 9, 4} {
		h.Push(s)
	}
	if got := h.Raw(0); got != 4 {
		t.Fatalf("expected newest sample 4, got %v", got)
	}
}

func TestSharpPushKeepsSingleSample(t *testing.T) {
	h := NewSharpHistoryValue(ast.Simple(ast.TypeInt))
	for i := 0; i < 10; i++ {
		h.Push(float64(i))
		if h.Len() != 1 {
			t.Fatalf("after push %d: expected history length 1, got %d", i, h.Len())
		}
	}
	if got := h.Get(0.5); got != (IntValue{Val: 9}) {
		t.Fatalf("expected 9, got %#v", got)
	}

	b := NewSharpHistoryValue(ast.Simple(ast.TypeBool))
	b.PushBool(true)
	b.PushBool(false)
	if b.Len() != 1 {
		t.Fatalf("expected bool history length 1, got %d", b.Len())
	}

	s := NewSharpHistoryValue(ast.Simple(ast.TypeString))
	s.PushString("abc")
	s.PushString("z")
	if got := s.Get(1.0); got != (StringValue{Val: "z"}) {
		t.Fatalf("expected sharp string 'z', got %#v", got)
	}
}

func TestIncrementedIntProjection(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeInt))
	h.Push(5)
	h.Push(h.Raw(1.0) + 1)
	if samples := h.Samples(); len(samples) != 2 || samples[0] != 5 || samples[1] != 6 {
		t.Fatalf("expected history [5 6], got %v", samples)
	}
	if raw := h.Raw(1.0); raw != 5.5 {
		t.Fatalf("expected average 5.5, got %v", raw)
	}
	if got := h.Get(1.0); got != (IntValue{Val: 6}) {
		t.Fatalf("expected projection 6, got %#v", got)
	}
}

func TestIntProjectionAbsorbsRoundingNoise(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeInt))
	for i := 0; i < 7; i++ {
		h.Push(5)
	}
	for _, decay := range []float64{0.1, 0.3, 0.7, 0.9, 0.95} {
		if got := h.Get(decay); got != (IntValue{Val: 5}) {
			t.Fatalf("decay %v: expected 5, got %#v", decay, got)
		}
	}
}

func TestEmptyProjections(t *testing.T) {
	cases := []struct {
		kind ast.TypeKind
		want Value
	}{
		{ast.TypeInt, IntValue{Val: 0}},
		{ast.TypeFloat, FloatValue{Val: 0}},
		{ast.TypeBool, BoolValue{Val: false}},
		{ast.TypeChar, CharValue{Val: 0}},
		{ast.TypeString, StringValue{Val: ""}},
		{ast.TypeVoid, VoidValue{}},
	}
	for _, tc := range cases {
		h := NewHistoryValue(ast.Simple(tc.kind))
		if got := h.Get(DefaultDecay); got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.kind, tc.want, got)
		}
	}
}

func TestBoolRatioBoundaryIsInclusive(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeBool))
	h.PushBool(true)
	h.PushBool(false)
	h.PushBool(false)
	h.PushBool(true)
	if got := h.Get(1.0); got != (BoolValue{Val: true}) {
		t.Fatalf("expected half-true history to project true, got %#v", got)
	}
	h.PushBool(false)
	if got := h.Get(1.0); got != (BoolValue{Val: false}) {
		t.Fatalf("expected 2/5 true to project false, got %#v", got)
	}
	if got := h.Get(0); got != (BoolValue{Val: false}) {
		t.Fatalf("expected zero decay to follow the newest sample, got %#v", got)
	}
}

func TestCharProjectionCeilsCodes(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeChar))
	h.Push('a')
	h.Push('d')
	if got := h.Get(1.0); got != (CharValue{Val: 'c'}) {
		t.Fatalf("expected 'c', got %#v", got)
	}
}

func TestSpaceIsNoOpPerPosition(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeString))
	h.PushString("ab")
	h.PushString("a ")
	if got := string(h.PositionSamples(0)); got != "aa" {
		t.Fatalf("expected position 0 history 'aa', got %q", got)
	}
	if got := string(h.PositionSamples(1)); got != "b" {
		t.Fatalf("expected position 1 history 'b', got %q", got)
	}
	if got := h.Get(1.0); got != (StringValue{Val: "ab"}) {
		t.Fatalf("expected projection 'ab', got %#v", got)
	}
}

func TestUntouchedStringPositionsProjectAsSpaces(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeString))
	h.PushString("a  d")
	if got := h.Get(1.0); got != (StringValue{Val: "a  d"}) {
		t.Fatalf("expected 'a  d', got %#v", got)
	}
	if h.Positions() != 4 {
		t.Fatalf("expected 4 positions, got %d", h.Positions())
	}
}

func TestPushStringRepeatedSeedsSamples(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeString))
	h.PushStringRepeated("aaa", 3)
	h.PushString("ddd")
	if h.Len() != 4 {
		t.Fatalf("expected 4 samples per position, got %d", h.Len())
	}
	// mean of a,a,a,d = 97.75 -> 'b'
	if got := h.Get(1.0); got != (StringValue{Val: "bbb"}) {
		t.Fatalf("expected 'bbb', got %#v", got)
	}
}

func TestDecayChangeIsObservedOnNextRead(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeInt))
	h.Push(0)
	h.Push(10)
	first := h.Get(1.0)
	second := h.Get(0)
	if first != (IntValue{Val: 5}) {
		t.Fatalf("expected 5 at full decay, got %#v", first)
	}
	if second != (IntValue{Val: 10}) {
		t.Fatalf("expected 10 at zero decay, got %#v", second)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	h := NewHistoryValue(ast.Simple(ast.TypeString))
	h.PushString("hi")
	c := h.Clone()
	c.PushString("yo")
	if h.Len() != 1 {
		t.Fatalf("original history changed: length %d", h.Len())
	}
	if c.Len() != 2 {
		t.Fatalf("expected clone length 2, got %d", c.Len())
	}
}

func TestStoreFollowsTypeTag(t *testing.T) {
	b := NewHistoryValue(ast.Simple(ast.TypeBool))
	b.Store(IntValue{Val: 3})
	if got := b.BoolSamples(); len(got) != 1 || !got[0] {
		t.Fatalf("expected bool sample true, got %v", got)
	}

	s := NewHistoryValue(ast.Simple(ast.TypeString))
	s.Store(IntValue{Val: 3})
	if s.Positions() != 0 {
		t.Fatalf("expected non-text value to leave string history untouched")
	}
	s.Store(CharValue{Val: 'x'})
	if got := s.Get(1.0); got != (StringValue{Val: "x"}) {
		t.Fatalf("expected 'x', got %#v", got)
	}

	f := NewHistoryValue(ast.Simple(ast.TypeFloat))
	f.Store(BoolValue{Val: true})
	if got := f.Samples(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected numeric sample 1, got %v", got)
	}
}

func TestCeilSampleSnapsNearIntegers(t *testing.T) {
	cases := []struct {
		avg  float64
		want float64
	}{
		{7, 7},
		{7 + 1e-12, 7},
		{7 - 1e-12, 7},
		{7.2, 8},
		{-2.5, -2},
		{7 + 1e-6, 8},
	}
	for _, tc := range cases {
		if got := ceilSample(tc.avg); got != tc.want {
			t.Fatalf("ceilSample(%v) = %v, want %v", tc.avg, got, tc.want)
		}
	}
}
