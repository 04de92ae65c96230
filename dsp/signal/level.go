// Package signal provides oscillator waveforms and level helpers.
package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Peak returns the largest absolute sample value.
func Peak(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > peak {
			peak = av
		}
	}
	return peak
}

// Normalize scales data to targetPeak and returns a new slice. Silent
// input stays silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 || math.IsNaN(targetPeak) {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0, got %g: %w", targetPeak, core.ErrRange)
	}

	out := make([]float64, len(data))
	peak := Peak(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
