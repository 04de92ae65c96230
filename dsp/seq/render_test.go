package seq

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/sound"
	"github.com/cwbudde/algo-grain/internal/testutil"
)

const sr = 1000

func monoOut(seconds float64) *sound.Buffer {
	return sound.New(core.SecondsToFrames(seconds, sr), core.WithSampleRate(sr), core.WithChannels(1))
}

func constVoice(frames int) Voice {
	return func(_ context.Context, ev Event) (*sound.Buffer, error) {
		b := sound.New(frames, core.WithSampleRate(sr), core.WithChannels(1))
		for i := range b.Samples() {
			b.Samples()[i] = float64(ev.Index + 1)
		}
		return b, nil
	}
}

func TestRenderDubsAtOnsets(t *testing.T) {
	out := monoOut(1)
	n, err := Render(context.Background(), out, Every(1, 0.25), constVoice(10))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("Render() dubbed %d events, want 4", n)
	}
	x := out.Samples()
	for i, onset := range []int{0, 250, 500, 750} {
		if x[onset] != float64(i+1) || x[onset+9] != float64(i+1) {
			t.Fatalf("grain %d not found at frame %d", i, onset)
		}
		testutil.RequireSilent(t, x[onset+10:onset+250])
	}
}

func TestRenderGrowsOutput(t *testing.T) {
	out := monoOut(1)
	if _, err := Render(context.Background(), out, Every(1, 0.5), constVoice(600)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out.Len() != 1100 {
		t.Fatalf("Len() = %d, want 1100", out.Len())
	}
}

func TestRenderDeterministicAcrossWorkers(t *testing.T) {
	voice := func(_ context.Context, ev Event) (*sound.Buffer, error) {
		b := sound.New(5, core.WithSampleRate(sr), core.WithChannels(1))
		for i := range b.Samples() {
			b.Samples()[i] = ev.Rand.Float64()
		}
		return b, nil
	}
	render := func(workers int) []float64 {
		out := monoOut(2)
		if _, err := Render(context.Background(), out, Every(2, 0.003), voice, WithWorkers(workers), WithSeed(9)); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		return out.Samples()
	}
	testutil.RequireSliceNearlyEqual(t, render(8), render(1), 0)
}

func TestRenderRedrawsWithoutSeed(t *testing.T) {
	voice := func(_ context.Context, ev Event) (*sound.Buffer, error) {
		b := sound.New(1, core.WithSampleRate(sr), core.WithChannels(1))
		b.Samples()[0] = ev.Rand.Float64()
		return b, nil
	}
	render := func() []float64 {
		out := monoOut(1)
		if _, err := Render(context.Background(), out, Every(1, 0.1), voice); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		return out.Samples()
	}
	if d, _ := testutil.MaxAbsDiff(render(), render()); d == 0 {
		t.Fatal("unseeded renders should draw different event sources")
	}
}

func TestRenderBoundsConcurrency(t *testing.T) {
	var active, peak atomic.Int32
	voice := func(_ context.Context, _ Event) (*sound.Buffer, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer active.Add(-1)
		return nil, nil
	}
	n, err := Render(context.Background(), monoOut(1), Every(1, 0.01), voice, WithWorkers(2))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("Render() dubbed %d nil grains, want 0", n)
	}
	if peak.Load() > 2 {
		t.Fatalf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestRenderVoiceError(t *testing.T) {
	boom := errors.New("boom")
	voice := func(_ context.Context, ev Event) (*sound.Buffer, error) {
		if ev.Index == 3 {
			return nil, boom
		}
		return constVoice(10)(context.Background(), ev)
	}
	out := monoOut(1)
	if _, err := Render(context.Background(), out, Every(1, 0.1), voice); !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want boom", err)
	}
	testutil.RequireSilent(t, out.Samples())
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, monoOut(1), Every(1, 0.1), constVoice(10)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() error = %v, want context.Canceled", err)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(context.Background(), nil, Every(1, 0.1), constVoice(1)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("Render(nil out) error = %v, want ErrConfiguration", err)
	}
	if _, err := Render(context.Background(), monoOut(1), Every(1, 0), constVoice(1)); !errors.Is(err, core.ErrRange) {
		t.Fatalf("Render(zero step) error = %v, want ErrRange", err)
	}
}
