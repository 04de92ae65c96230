package fx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

const (
	minCrushBits = 1.0
	maxCrushBits = 32.0
)

// CrushOption adjusts Crush.
type CrushOption func(*crushConfig) error

type crushConfig struct {
	mix float64
}

// WithCrushMix blends the crushed signal with the dry input. 1 is fully
// crushed.
func WithCrushMix(mix float64) CrushOption {
	return func(cfg *crushConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("fx: crush mix must be in [0, 1], got %g: %w", mix, core.ErrRange)
		}
		cfg.mix = mix
		return nil
	}
}

// Crush quantizes to bits of resolution and sample-and-holds at
// targetRate. Fractional bit depths and rates are allowed; a target rate
// at or above the buffer's rate disables the hold.
func Crush(buf *sound.Buffer, bits, targetRate float64, opts ...CrushOption) (*sound.Buffer, error) {
	if bits < minCrushBits || bits > maxCrushBits || math.IsNaN(bits) {
		return nil, fmt.Errorf("fx: crush bit depth must be in [%g, %g], got %g: %w",
			minCrushBits, maxCrushBits, bits, core.ErrRange)
	}
	if targetRate <= 0 || math.IsNaN(targetRate) {
		return nil, fmt.Errorf("fx: crush target rate must be > 0, got %g: %w", targetRate, core.ErrRange)
	}

	cfg := crushConfig{mix: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	levels := math.Exp2(bits - 1)
	step := math.Min(targetRate/float64(buf.SampleRate()), 1)

	return eachChannel(buf, func(_ int, x []float64) ([]float64, error) {
		held, acc := 0.0, 1.0
		for i, v := range x {
			if acc >= 1 {
				acc -= math.Floor(acc)
				held = math.Round(v*levels) / levels
			}
			acc += step
			x[i] = v*(1-cfg.mix) + held*cfg.mix
		}
		return x, nil
	})
}
