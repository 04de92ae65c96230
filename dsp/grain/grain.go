// Package grain decomposes sample buffers into consecutive grains.
package grain

import (
	"iter"
	"math/rand"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// Option configures grain planning.
type Option func(*config)

type config struct {
	maxLength int
	rng       *rand.Rand
}

// WithMaxLength draws every grain length uniformly from
// [minLength, maxLength]. Without it all grains have minLength frames.
func WithMaxLength(frames int) Option {
	return func(c *config) {
		c.maxLength = frames
	}
}

// WithRand injects the random source for randomized lengths. Without it
// every plan draws from a fresh seed.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// planner hands out grain lengths until total frames are covered.
type planner struct {
	total, pos int
	lo, hi     int
	rng        *rand.Rand
}

func newPlanner(total, minLength int, opts []Option) *planner {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	lo := max(minLength, 1)
	hi := lo
	if cfg.maxLength > 0 {
		hi = cfg.maxLength
		if hi < lo {
			lo, hi = hi, lo
		}
	}

	rng := cfg.rng
	if rng == nil && hi > lo {
		rng = core.NewRand()
	}

	return &planner{total: total, lo: lo, hi: hi, rng: rng}
}

// next returns the next grain's start and length, or ok=false once the
// source is exhausted. The final grain is truncated to what remains.
func (p *planner) next() (start, length int, ok bool) {
	if p.pos >= p.total {
		return 0, 0, false
	}

	length = p.lo
	if p.hi > p.lo {
		length += p.rng.Intn(p.hi - p.lo + 1)
	}
	length = min(length, p.total-p.pos)

	start = p.pos
	p.pos += length
	return start, length, true
}

// Iter returns the grains of buf in order of increasing start frame. The
// grains cover buf exactly, without gaps or overlap, and each is an
// independent copy. minLength below 1 is treated as 1.
//
// The sequence is lazy and single-use: ranging over it a second time
// yields nothing. Call Iter again to restart.
func Iter(buf *sound.Buffer, minLength int, opts ...Option) iter.Seq[*sound.Buffer] {
	p := newPlanner(buf.Len(), minLength, opts)

	return func(yield func(*sound.Buffer) bool) {
		for {
			start, length, ok := p.next()
			if !ok {
				return
			}
			if !yield(buf.Slice(start, start+length)) {
				return
			}
		}
	}
}

// Lengths returns the grain lengths Iter would produce for a source of
// total frames with the same options and random source state.
func Lengths(total, minLength int, opts ...Option) []int {
	p := newPlanner(total, minLength, opts)

	var out []int
	for {
		_, length, ok := p.next()
		if !ok {
			return out
		}
		out = append(out, length)
	}
}
