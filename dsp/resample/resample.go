package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Quality selects the anti-aliasing filter profile.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityBest
)

const defaultMaxDen = 1024

type profile struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

func profileFor(q Quality) profile {
	switch q {
	case QualityFast:
		return profile{tapsPerPhase: 16, cutoffScale: 0.88, kaiserBeta: 5.0}
	case QualityBest:
		return profile{tapsPerPhase: 64, cutoffScale: 0.96, kaiserBeta: 9.0}
	default:
		return profile{tapsPerPhase: 32, cutoffScale: 0.92, kaiserBeta: 7.5}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	maxDen       int
}

// Option configures a Resampler.
type Option func(*config)

// WithQuality selects a filter profile. The default is QualityBalanced.
func WithQuality(q Quality) Option {
	return func(c *config) {
		c.quality = q
	}
}

// WithTapsPerPhase overrides the taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tapsPerPhase = n
		}
	}
}

// WithMaxDenominator bounds the denominator used to approximate
// irrational ratios.
func WithMaxDenominator(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDen = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: defaultMaxDen}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Resampler is a streaming polyphase converter. It is not safe for
// concurrent use.
type Resampler struct {
	up, down int
	phases   [][]float64
	center   float64
	longest  int

	phase   int
	next    int
	totalIn int
	history []float64
}

// New creates a resampler producing up output samples for every down
// input samples.
func New(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("resample: ratio %d/%d must be positive: %w", up, down, core.ErrConfiguration)
	}
	g := gcd(up, down)
	up, down = up/g, down/g

	cfg := applyOptions(opts)
	p := profileFor(cfg.quality)
	if cfg.tapsPerPhase > 0 {
		p.tapsPerPhase = cfg.tapsPerPhase
	}

	phases, longest, center := designPolyphase(up, down, p)

	return &Resampler{
		up:      up,
		down:    down,
		phases:  phases,
		center:  center,
		longest: longest,
	}, nil
}

// NewForRatio creates a resampler whose output/input length ratio
// approximates ratio.
func NewForRatio(ratio float64, opts ...Option) (*Resampler, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("resample: ratio must be finite and > 0, got %g: %w", ratio, core.ErrRange)
	}
	cfg := applyOptions(opts)
	up, down := approximateRatio(ratio, cfg.maxDen)
	return New(up, down, opts...)
}

// Ratio returns the reduced up/down factors.
func (r *Resampler) Ratio() (up, down int) { return r.up, r.down }

// Latency returns the filter delay in output samples.
func (r *Resampler) Latency() float64 { return r.center / float64(r.down) }

// Reset clears the stream state.
func (r *Resampler) Reset() {
	r.phase, r.next, r.totalIn = 0, 0, 0
	r.history = r.history[:0]
}

// Process converts the next block of a stream.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	work := append(append(make([]float64, 0, len(r.history)+len(input)), r.history...), input...)
	base := r.totalIn - len(r.history)
	last := r.totalIn + len(input) - 1

	var out []float64
	for r.next <= last {
		var y float64
		for k, c := range r.phases[r.phase] {
			idx := r.next - k
			if idx < base {
				break
			}
			y += c * work[idx-base]
		}
		out = append(out, y)

		r.phase += r.down
		r.next += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)
	keep := min(max(0, r.longest-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)

	return out
}

// Stretch resamples a whole signal to round(len(input)*ratio) samples
// with the filter latency removed. Ratios above 1 lengthen the signal
// and lower its pitch when played at the original rate.
func Stretch(input []float64, ratio float64, opts ...Option) ([]float64, error) {
	r, err := NewForRatio(ratio, opts...)
	if err != nil {
		return nil, err
	}

	want := int(math.Round(float64(len(input)) * ratio))
	if want == 0 {
		return []float64{}, nil
	}

	skip := int(math.Round(r.Latency()))
	out := r.Process(input)
	tail := int(math.Ceil(float64(skip+want-len(out))*float64(r.down)/float64(r.up))) + r.longest
	if tail > 0 {
		out = append(out, r.Process(make([]float64, tail))...)
	}

	res := make([]float64, want)
	if skip < len(out) {
		copy(res, out[skip:])
	}
	return res, nil
}
