package interp

import "math"

// Linear returns a + frac*(b-a).
func Linear(a, b, frac float64) float64 {
	return a + frac*(b-a)
}

// Table samples table at a normalized phase. The phase is clamped to
// [0, 1] and mapped to the real index phase*(len-1), so Table(t, 0) is
// t[0] and Table(t, 1) is t[len-1]. An empty table yields 0.
func Table(table []float64, phase float64) float64 {
	n := len(table)
	switch n {
	case 0:
		return 0
	case 1:
		return table[0]
	}

	if math.IsNaN(phase) || phase <= 0 {
		return table[0]
	}
	if phase >= 1 {
		return table[n-1]
	}

	pos := phase * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return table[n-1]
	}

	return Linear(table[i], table[i+1], pos-float64(i))
}

// LagrangeInterpolator provides configurable fractional interpolation.
type LagrangeInterpolator struct {
	order int
}

// NewLagrangeInterpolator creates an interpolator.
// order: 1 = linear, 3 = cubic (Hermite-style 4-point interpolation).
// Other orders fall back to linear.
func NewLagrangeInterpolator(order int) *LagrangeInterpolator {
	if order != 3 {
		order = 1
	}
	return &LagrangeInterpolator{order: order}
}

// At reads data at a fractional index. Neighbours outside the slice are
// clamped to the edge samples; pos outside [0, len-1] returns 0.
func (l *LagrangeInterpolator) At(data []float64, pos float64) float64 {
	n := len(data)
	if n == 0 || pos < 0 || pos > float64(n-1) || math.IsNaN(pos) {
		return 0
	}

	i := int(pos)
	frac := pos - float64(i)
	at := func(k int) float64 {
		if k < 0 {
			return data[0]
		}
		if k >= n {
			return data[n-1]
		}
		return data[k]
	}

	if l.order == 3 {
		return Hermite4(frac, at(i-1), at(i), at(i+1), at(i+2))
	}
	return Linear(at(i), at(i+1), frac)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
