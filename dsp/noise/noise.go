// Package noise synthesizes band-limited noise from oscillators whose
// frequency is redrawn every cycle inside a moving band.
package noise

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
	"github.com/cwbudde/algo-grain/dsp/signal"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// MinFreq is the lowest frequency the oscillator will run at.
const MinFreq = 1.0

// Option configures BLN.
type Option func(*config)

type config struct {
	proc      core.ProcessorConfig
	rng       *rand.Rand
	amplitude float64
}

// WithSampleRate sets the output sample rate.
func WithSampleRate(sampleRate int) Option {
	return func(c *config) {
		core.WithSampleRate(sampleRate)(&c.proc)
	}
}

// WithChannels sets the output channel count. Every channel carries the
// same signal.
func WithChannels(channels int) Option {
	return func(c *config) {
		core.WithChannels(channels)(&c.proc)
	}
}

// WithRand injects the random source for frequency draws. Without it or
// WithSeed every call draws from a fresh seed.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithSeed seeds a private random source for frequency draws.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithAmplitude sets the oscillator peak level. The default is 1.
func WithAmplitude(amplitude float64) Option {
	return func(c *config) {
		c.amplitude = amplitude
	}
}

// BLN renders seconds of band-limited noise. At the start of every
// oscillator cycle a frequency is drawn uniformly from
// [low(t), high(t)], t being the normalized position in the output.
// Inverted bounds are swapped. Frequencies are clamped to
// [MinFreq, Nyquist].
func BLN(w signal.Waveform, seconds float64, low, high curve.Bound, opts ...Option) (*sound.Buffer, error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("noise: length must be a finite, non-negative number of seconds, got %g: %w", seconds, core.ErrRange)
	}
	if low == nil || high == nil {
		return nil, fmt.Errorf("noise: frequency bounds must not be nil: %w", core.ErrConfiguration)
	}

	cfg := config{proc: core.DefaultProcessorConfig(), amplitude: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.rng == nil {
		cfg.rng = core.NewRand()
	}

	sr := float64(cfg.proc.SampleRate)
	nyquist := sr / 2
	out := sound.New(core.SecondsToFrames(seconds, cfg.proc.SampleRate),
		core.WithSampleRate(cfg.proc.SampleRate), core.WithChannels(cfg.proc.Channels))

	frames := out.Len()
	draw := func(i int) float64 {
		lo, hi := curve.Span(low, high, float64(i)/float64(frames))
		f := lo + cfg.rng.Float64()*(hi-lo)
		return core.Clamp(f, MinFreq, nyquist) / sr
	}

	ch := cfg.proc.Channels
	samples := out.Samples()
	phase := 0.0
	inc := 0.0
	if frames > 0 {
		inc = draw(0)
	}
	for i := range frames {
		v := cfg.amplitude * w.At(phase)
		for c := range ch {
			samples[i*ch+c] = v
		}

		phase += inc
		if phase >= 1 {
			phase -= math.Floor(phase)
			inc = draw(i + 1)
		}
	}

	return out, nil
}

// BLNNamed is BLN with the waveform given by name.
func BLNNamed(name string, seconds float64, low, high curve.Bound, opts ...Option) (*sound.Buffer, error) {
	w, err := signal.ParseWaveform(name)
	if err != nil {
		return nil, err
	}
	return BLN(w, seconds, low, high, opts...)
}
