package dither

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-grain/dsp/core"
)

const (
	minBitDepth = 2
	maxBitDepth = 32
)

// Option configures a Quantizer.
type Option func(*config) error

type config struct {
	kind      Type
	amplitude float64
	rng       *rand.Rand
}

// WithType selects the dither noise (default Triangular).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type %d: %w", int(t), core.ErrConfiguration)
		}
		cfg.kind = t
		return nil
	}
}

// WithAmplitude scales the dither noise in quantization steps (default 1).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be finite and >= 0, got %g: %w", amp, core.ErrRange)
		}
		cfg.amplitude = amp
		return nil
	}
}

// WithRand injects the noise source. The default is seeded with
// core.DefaultSeed so repeated runs write identical files.
func WithRand(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

// Quantizer maps samples in [-1, 1] onto signed integers of a fixed bit
// depth. It is not safe for concurrent use.
type Quantizer struct {
	bits      int
	kind      Type
	amplitude float64
	rng       *rand.Rand

	scale  float64
	lo, hi int
}

// NewQuantizer returns a quantizer for bits of resolution.
func NewQuantizer(bits int, opts ...Option) (*Quantizer, error) {
	if bits < minBitDepth || bits > maxBitDepth {
		return nil, fmt.Errorf("dither: bit depth must be in [%d, %d], got %d: %w",
			minBitDepth, maxBitDepth, bits, core.ErrConfiguration)
	}

	cfg := config{kind: Triangular, amplitude: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(core.DefaultSeed))
	}

	full := math.Exp2(float64(bits - 1))
	return &Quantizer{
		bits:      bits,
		kind:      cfg.kind,
		amplitude: cfg.amplitude,
		rng:       cfg.rng,
		scale:     full - 1,
		lo:        -int(full),
		hi:        int(full) - 1,
	}, nil
}

// BitDepth returns the target resolution.
func (q *Quantizer) BitDepth() int { return q.bits }

// Type returns the dither noise type.
func (q *Quantizer) Type() Type { return q.kind }

// ProcessInteger quantizes one sample, clamping to the integer range.
func (q *Quantizer) ProcessInteger(x float64) int {
	v := core.Clamp(x, -1, 1)*q.scale + q.noise()
	return max(q.lo, min(q.hi, int(math.Round(v))))
}

// Process quantizes a block of samples.
func (q *Quantizer) Process(dst []int, src []float64) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = q.ProcessInteger(x)
	}
	return dst
}

func (q *Quantizer) noise() float64 {
	switch q.kind {
	case Rectangular:
		return q.amplitude * (q.rng.Float64() - 0.5)
	case Triangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
