package seq

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// Event is one scheduled onset handed to a Voice.
type Event struct {
	// Index counts onsets from 0.
	Index int
	// Onset is the start time in seconds.
	Onset float64
	// Pos is Onset divided by the timeline length.
	Pos float64
	// Rand is private to this event and seeded from the render seed and
	// Index.
	Rand *rand.Rand
}

// Voice produces the grain for one event. A nil buffer skips the event.
// Voices run concurrently and must not share mutable state.
type Voice func(ctx context.Context, ev Event) (*sound.Buffer, error)

// Option configures Render.
type Option func(*config)

type config struct {
	workers int
	seed    int64
}

// WithWorkers bounds the number of voices running at once. Non-positive
// values keep the default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeed sets the base seed for per-event random sources. Without it
// each render draws a fresh base seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// Render generates one buffer per onset of tl and dubs each into out at
// its onset. It returns the number of events dubbed. The first voice
// error cancels the remaining work and leaves out untouched.
func Render(ctx context.Context, out *sound.Buffer, tl Timeline, voice Voice, opts ...Option) (int, error) {
	if out == nil || voice == nil {
		return 0, fmt.Errorf("seq: output buffer and voice are required: %w", core.ErrConfiguration)
	}
	cfg := config{workers: runtime.GOMAXPROCS(0), seed: core.RandomSeed()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	onsets, err := tl.Onsets()
	if err != nil {
		return 0, err
	}

	grains := make([]*sound.Buffer, len(onsets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, onset := range onsets {
		ev := Event{
			Index: i,
			Onset: onset,
			Pos:   onset / tl.Length,
			Rand:  rand.New(rand.NewSource(cfg.seed + int64(i))),
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := voice(ctx, ev)
			if err != nil {
				return fmt.Errorf("seq: event %d at %.3fs: %w", ev.Index, ev.Onset, err)
			}
			grains[ev.Index] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	dubbed := 0
	for i, b := range grains {
		if b == nil {
			continue
		}
		out.Dub(b, onsets[i])
		dubbed++
	}
	return dubbed, nil
}
