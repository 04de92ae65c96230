package testutil

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// PeakAbs returns the largest absolute sample value.
func PeakAbs(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// ZeroCrossingRate returns sign changes per second. Exact zeros do not
// count as crossings.
func ZeroCrossingRate(data []float64, sampleRate float64) float64 {
	if len(data) < 2 || sampleRate <= 0 {
		return 0
	}

	crossings := 0
	prev := 0.0
	for _, v := range data {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			crossings++
		}
		prev = v
	}
	return float64(crossings) * sampleRate / float64(len(data))
}

// BandEnergyFraction returns the share of spectral energy between lowHz
// and highHz. The signal is zero-padded to a power of two.
func BandEnergyFraction(data []float64, sampleRate, lowHz, highHz float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("testutil: empty signal")
	}

	size := 1
	for size < len(data) {
		size <<= 1
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, fmt.Errorf("testutil: fft plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range data {
		in[i] = complex(v, 0)
	}
	bins := make([]complex128, size)
	if err := plan.Forward(bins, in); err != nil {
		return 0, fmt.Errorf("testutil: forward fft: %w", err)
	}

	total, band := 0.0, 0.0
	binHz := sampleRate / float64(size)
	for k := 1; k <= size/2; k++ {
		re, im := real(bins[k]), imag(bins[k])
		e := re*re + im*im
		total += e
		if f := float64(k) * binHz; f >= lowHz && f <= highHz {
			band += e
		}
	}
	if total == 0 {
		return 0, nil
	}
	return band / total, nil
}
