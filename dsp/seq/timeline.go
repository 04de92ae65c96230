package seq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
)

// PhaseLoop makes the step curve repeat every Period seconds instead of
// spanning the whole timeline.
type PhaseLoop struct {
	Period float64
}

// Timeline describes onsets from Start up to (excluding) Length seconds.
// The gap after each onset is Step evaluated at the onset's normalized
// position, or at its loop phase when Phase is set.
type Timeline struct {
	Length float64
	Start  float64
	Step   curve.Bound
	Phase  *PhaseLoop
}

// Every returns a timeline with a fixed step.
func Every(length, step float64) Timeline {
	return Timeline{Length: length, Step: curve.Const(step)}
}

// Onsets enumerates onset times in seconds. A step that is not a finite
// positive number fails with core.ErrRange.
func (tl Timeline) Onsets() ([]float64, error) {
	if tl.Step == nil {
		return nil, fmt.Errorf("seq: timeline step must not be nil: %w", core.ErrConfiguration)
	}
	if tl.Length < 0 || math.IsNaN(tl.Length) || math.IsInf(tl.Length, 0) {
		return nil, fmt.Errorf("seq: timeline length must be finite and >= 0, got %g: %w", tl.Length, core.ErrRange)
	}
	if tl.Phase != nil && !(tl.Phase.Period > 0) {
		return nil, fmt.Errorf("seq: phase loop period must be > 0, got %g: %w", tl.Phase.Period, core.ErrConfiguration)
	}

	var onsets []float64
	phase := 0.0
	for elapsed := max(tl.Start, 0); elapsed < tl.Length; {
		onsets = append(onsets, elapsed)

		at := elapsed / tl.Length
		if tl.Phase != nil {
			at = phase / tl.Phase.Period
		}
		step := tl.Step.At(at)
		if !(step > 0) || math.IsInf(step, 0) {
			return nil, fmt.Errorf("seq: step at %.3fs must be > 0, got %g: %w", elapsed, step, core.ErrRange)
		}

		elapsed += step
		if tl.Phase != nil {
			phase += step
			if phase > tl.Phase.Period {
				phase -= tl.Phase.Period
			}
		}
	}
	return onsets, nil
}
