package runtime

import "math"

// DefaultDecay weights the previous sample at 90% of the one after it.
const DefaultDecay = 0.9

// Decay is the weighting constant consulted by every projection. Each
// interpreter owns one; projections read it on every call, so a Set is
// visible to the very next read of any variable.
type Decay struct {
	value float64
}

// NewDecay returns a decay clamped into [0,1].
func NewDecay(v float64) *Decay {
	d := &Decay{}
	d.Set(v)
	return d
}

// Set clamps v into [0,1]. NaN falls back to DefaultDecay.
func (d *Decay) Set(v float64) {
	if math.IsNaN(v) {
		v = DefaultDecay
	}
	d.value = math.Max(0, math.Min(1, v))
}

func (d *Decay) Value() float64 {
	if d == nil {
		return DefaultDecay
	}
	return d.value
}

// weightedMean averages n samples where sample(0) is the oldest. The newest
// sample has age 0 and weight 1; each step back multiplies the weight by
// decay. A decay of 1 or more is the plain arithmetic mean.
func weightedMean(n int, decay float64, sample func(i int) float64) float64 {
	if n == 0 {
		return 0
	}
	if decay >= 1 {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += sample(i)
		}
		return sum / float64(n)
	}
	weight := 1.0
	var sum, total float64
	for i := n - 1; i >= 0; i-- {
		sum += sample(i) * weight
		total += weight
		weight *= decay
	}
	return sum / total
}

// WeightedAverage applies the decay weighting to a numeric history.
func WeightedAverage(samples []float64, decay float64) float64 {
	return weightedMean(len(samples), decay, func(i int) float64 { return samples[i] })
}

// ceilSample rounds a projected average up. Unlike a plain ceiling, an
// average within 1e-9 of an integer snaps to that integer, so the rounding
// noise the weighting leaves on exact integers never bumps them by one.
func ceilSample(avg float64) float64 {
	const tolerance = 1e-9
	if r := math.Round(avg); math.Abs(avg-r) < tolerance {
		return r
	}
	return math.Ceil(avg)
}
