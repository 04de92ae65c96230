package curve

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/interp"
)

// Curve is an immutable table with phase-indexed linear lookup.
type Curve struct {
	values []float64
}

// New copies values into a Curve. An empty table is a configuration error.
func New(values []float64) (*Curve, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("curve: table must not be empty: %w", core.ErrConfiguration)
	}

	return &Curve{values: append([]float64(nil), values...)}, nil
}

// Points builds a curve from explicit control points. It panics when no
// points are given; use [New] to handle that case as an error.
func Points(values ...float64) *Curve {
	c, err := New(values)
	if err != nil {
		panic(err)
	}
	return c
}

// Interp samples the curve at phase in [0,1]; phase outside the range is
// clamped. Interp(0) and Interp(1) return the first and last entries.
func (c *Curve) Interp(phase float64) float64 {
	return interp.Table(c.values, phase)
}

// At implements [Bound].
func (c *Curve) At(phase float64) float64 {
	return c.Interp(phase)
}

// Len returns the table resolution.
func (c *Curve) Len() int { return len(c.values) }

// Values returns a copy of the table.
func (c *Curve) Values() []float64 {
	return append([]float64(nil), c.values...)
}

// Min returns the smallest table entry.
func (c *Curve) Min() float64 {
	m := c.values[0]
	for _, v := range c.values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest table entry.
func (c *Curve) Max() float64 {
	m := c.values[0]
	for _, v := range c.values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Scaled maps every entry v, assumed normalized to [0,1], onto
// low + (high-low)*v where both bounds are evaluated at the entry's
// phase.
func (c *Curve) Scaled(low, high Bound) *Curve {
	out := make([]float64, len(c.values))
	last := float64(len(c.values) - 1)
	for i, v := range c.values {
		p := 0.0
		if last > 0 {
			p = float64(i) / last
		}
		lo := low.At(p)
		out[i] = lo + (high.At(p)-lo)*v
	}
	return &Curve{values: out}
}

// String implements fmt.Stringer.
func (c *Curve) String() string {
	return fmt.Sprintf("Curve(len=%d min=%.4g max=%.4g)", len(c.values), c.Min(), c.Max())
}

// Bound is a value that may vary with normalized position.
type Bound interface {
	At(phase float64) float64
}

// Const is a Bound with the same value everywhere.
type Const float64

// At implements Bound.
func (c Const) At(float64) float64 { return float64(c) }

// Between draws one constant uniformly from [lo, hi]. The bounds may be
// given in either order.
func Between(lo, hi float64, rng *rand.Rand) Const {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Const(lo + rng.Float64()*(hi-lo))
}

// Func adapts a plain function to Bound.
type Func func(phase float64) float64

// At implements Bound.
func (f Func) At(phase float64) float64 { return f(phase) }

// Span returns the bounds evaluated at phase, swapped when inverted.
func Span(low, high Bound, phase float64) (lo, hi float64) {
	lo, hi = low.At(phase), high.At(phase)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}
