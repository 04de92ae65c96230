// Package multiband splits sample buffers into contiguous frequency
// bands whose sum approximately reconstructs the source.
//
// Band edges are log-spaced between a minimum frequency (40 Hz by
// default) and Nyquist, so every band spans the same number of octaves.
// The default mode filters with a cascade of Linkwitz-Riley crossovers;
// the spectral mode partitions the FFT of each channel and reconstructs
// exactly.
package multiband

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/filter"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

const (
	// DefaultMinFreq is the lowest band edge in Hz.
	DefaultMinFreq = 40.0
	// DefaultOrder is the Linkwitz-Riley order of each crossover.
	DefaultOrder = 4
)

// Option configures Split.
type Option func(*config)

type config struct {
	minFreq  float64
	order    int
	spectral bool
}

// WithMinFreq sets the lowest band edge.
func WithMinFreq(hz float64) Option {
	return func(c *config) {
		if hz > 0 {
			c.minFreq = hz
		}
	}
}

// WithOrder sets the crossover order. It must be a positive even
// integer.
func WithOrder(order int) Option {
	return func(c *config) {
		c.order = order
	}
}

// WithSpectral selects the FFT partition instead of crossover filters.
func WithSpectral() Option {
	return func(c *config) {
		c.spectral = true
	}
}

// Edges returns the n-1 inner band edges for n bands, log-spaced between
// minFreq and Nyquist.
func Edges(n, sampleRate int, minFreq float64) []float64 {
	if n < 2 {
		return nil
	}
	nyquist := float64(sampleRate) / 2
	ratio := math.Log(nyquist / minFreq)

	edges := make([]float64, n-1)
	for i := range edges {
		edges[i] = minFreq * math.Exp(ratio*float64(i+1)/float64(n))
	}
	return edges
}

// Split returns n buffers with the source's format and length, ordered
// from lowest to highest band. n == 1 returns a copy of buf.
func Split(buf *sound.Buffer, n int, opts ...Option) ([]*sound.Buffer, error) {
	if n < 1 {
		return nil, fmt.Errorf("multiband: band count must be >= 1, got %d: %w", n, core.ErrConfiguration)
	}

	cfg := config{minFreq: DefaultMinFreq, order: DefaultOrder}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if n == 1 {
		return []*sound.Buffer{buf.Copy()}, nil
	}

	if cfg.minFreq >= float64(buf.SampleRate())/2 {
		return nil, fmt.Errorf("multiband: minimum frequency %g Hz is not below nyquist: %w", cfg.minFreq, core.ErrConfiguration)
	}
	edges := Edges(n, buf.SampleRate(), cfg.minFreq)

	split := splitCrossover(cfg.order)
	if cfg.spectral {
		split = splitSpectral
	}

	bands := make([]*sound.Buffer, n)
	for i := range bands {
		bands[i] = buf.Copy().Clear()
	}
	for c := range buf.Channels() {
		parts, err := split(buf.Channel(c), edges, float64(buf.SampleRate()))
		if err != nil {
			return nil, err
		}
		for i, part := range parts {
			bands[i].SetChannel(c, part)
		}
	}
	return bands, nil
}

type splitFunc func(x, edges []float64, sampleRate float64) ([][]float64, error)

func splitCrossover(order int) splitFunc {
	return func(x, edges []float64, sampleRate float64) ([][]float64, error) {
		mb, err := filter.NewMultiBand(edges, order, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("multiband: %w", err)
		}
		return mb.ProcessBlock(x), nil
	}
}

// splitSpectral zeroes every FFT bin outside each band. Each bin belongs
// to exactly one band, so the bands sum back to the input.
func splitSpectral(x, edges []float64, sampleRate float64) ([][]float64, error) {
	bands := make([][]float64, len(edges)+1)
	if len(x) == 0 {
		for i := range bands {
			bands[i] = []float64{}
		}
		return bands, nil
	}

	size := 1
	for size < len(x) {
		size <<= 1
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("multiband: fft plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	bins := make([]complex128, size)
	if err := plan.Forward(bins, in); err != nil {
		return nil, fmt.Errorf("multiband: forward fft: %w", err)
	}

	binHz := sampleRate / float64(size)
	band := func(k int) int {
		if k > size/2 {
			k = size - k
		}
		f := float64(k) * binHz
		b := 0
		for b < len(edges) && f >= edges[b] {
			b++
		}
		return b
	}

	masked := make([]complex128, size)
	out := make([]complex128, size)
	for b := range bands {
		for k := range bins {
			if band(k) == b {
				masked[k] = bins[k]
			} else {
				masked[k] = 0
			}
		}
		if err := plan.Inverse(out, masked); err != nil {
			return nil, fmt.Errorf("multiband: inverse fft: %w", err)
		}
		bands[b] = make([]float64, len(x))
		for i := range bands[b] {
			bands[b][i] = real(out[i])
		}
	}
	return bands, nil
}
