package resample

import "math"

// designPolyphase builds the prototype lowpass and splits it into up
// branches. Each branch sums to roughly 1.
func designPolyphase(up, down int, p profile) (phases [][]float64, longest int, center float64) {
	n := p.tapsPerPhase * up
	fc := 0.5 / float64(max(up, down)) * p.cutoffScale
	center = 0.5 * float64(n-1)

	taps := make([]float64, n)
	sum := 0.0
	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiser(i, n, p.kaiserBeta)
		sum += taps[i]
	}
	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	phases = make([][]float64, up)
	for ph := range up {
		for i := ph; i < n; i += up {
			phases[ph] = append(phases[ph], taps[i])
		}
		longest = max(longest, len(phases[ph]))
	}
	return phases, longest, center
}

// approximateRatio finds the continued-fraction convergent of v with
// denominator at most maxDen.
func approximateRatio(v float64, maxDen int) (num, den int) {
	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v
	for {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
		a := math.Floor(x)
		p2, q2 := a*p1+p0, a*q1+q0
		if q2 > float64(maxDen) {
			break
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
	}

	num, den = int(math.Round(p1)), int(math.Round(q1))
	if num <= 0 {
		// v is below 1/maxDen; use the smallest representable ratio.
		return 1, maxDen
	}
	g := gcd(num, den)
	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its
// power series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	x2 := x * x / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
