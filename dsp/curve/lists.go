package curve

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Rescale maps values linearly from [fromLo, fromHi] to [toLo, toHi]
// and returns a new slice. Values outside the source range extrapolate.
func Rescale(values []float64, fromLo, fromHi, toLo, toHi float64) ([]float64, error) {
	if fromLo == fromHi {
		return nil, fmt.Errorf("curve: rescale source range is empty: %w", core.ErrRange)
	}
	k := (toHi - toLo) / (fromHi - fromLo)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = toLo + (v-fromLo)*k
	}
	return out, nil
}

// SnapStep rounds every value up to the next multiple of step.
func SnapStep(values []float64, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("curve: snap step must be finite and > 0, got %g: %w", step, core.ErrRange)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Ceil(v/step) * step
	}
	return out, nil
}

// SnapPattern replaces every value with the smallest pattern entry at or
// above it, or with the largest entry when none is.
func SnapPattern(values, pattern []float64) ([]float64, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("curve: snap pattern must not be empty: %w", core.ErrConfiguration)
	}
	sorted := slices.Clone(pattern)
	slices.Sort(sorted)

	out := make([]float64, len(values))
	for i, v := range values {
		j, _ := slices.BinarySearch(sorted, v)
		out[i] = sorted[min(j, len(sorted)-1)]
	}
	return out, nil
}
