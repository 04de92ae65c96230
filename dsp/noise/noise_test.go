package noise

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
	"github.com/cwbudde/algo-grain/dsp/signal"
	"github.com/cwbudde/algo-grain/internal/testutil"
)

const sr = 44100

func meanFreq(data []float64) float64 {
	return testutil.ZeroCrossingRate(data, sr) / 2
}

func TestConstantBandStatistics(t *testing.T) {
	tests := []struct {
		name     string
		low      float64
		high     float64
		band     [2]float64
		minShare float64
	}{
		{name: "low", low: 40, high: 200, band: [2]float64{20, 400}, minShare: 0.6},
		{name: "high", low: 9000, high: 11000, band: [2]float64{7000, 13000}, minShare: 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := BLN(signal.Sine, 2, curve.Const(tt.low), curve.Const(tt.high),
				WithSampleRate(sr), WithChannels(1), WithSeed(7))
			if err != nil {
				t.Fatalf("BLN() error = %v", err)
			}
			if b.Len() != 2*sr {
				t.Fatalf("Len() = %d, want %d", b.Len(), 2*sr)
			}
			testutil.RequireFinite(t, b.Samples())

			f := meanFreq(b.Samples())
			if f < tt.low || f > tt.high {
				t.Fatalf("mean frequency %.1f outside [%v, %v]", f, tt.low, tt.high)
			}

			share, err := testutil.BandEnergyFraction(b.Samples(), sr, tt.band[0], tt.band[1])
			if err != nil {
				t.Fatal(err)
			}
			if share < tt.minShare {
				t.Fatalf("in-band energy share %.3f, want >= %.2f", share, tt.minShare)
			}
		})
	}
}

func TestBandFollowsCurves(t *testing.T) {
	low := curve.Points(100, 5000)
	high := curve.Points(200, 6000)
	b, err := BLN(signal.Sine, 4, low, high, WithSampleRate(sr), WithChannels(1), WithSeed(3))
	if err != nil {
		t.Fatalf("BLN() error = %v", err)
	}

	n := b.Len()
	head := meanFreq(b.Samples()[:n/10])
	tail := meanFreq(b.Samples()[n-n/10:])
	if head < 90 || head > 860 {
		t.Fatalf("head mean frequency %.1f outside the opening band", head)
	}
	if tail < 4000 || tail > 6600 {
		t.Fatalf("tail mean frequency %.1f outside the closing band", tail)
	}
}

func TestInvertedBoundsAreSwapped(t *testing.T) {
	a, err := BLN(signal.Triangle, 0.2, curve.Const(3000), curve.Const(6000), WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BLN(signal.Triangle, 0.2, curve.Const(6000), curve.Const(3000), WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, a.Samples(), b.Samples(), 0)
}

func TestSeedingControlsRedraw(t *testing.T) {
	render := func(opts ...Option) []float64 {
		b, err := BLN(signal.Sine, 0.1, curve.Const(200), curve.Const(8000), append(opts, WithChannels(1))...)
		if err != nil {
			t.Fatalf("BLN() error = %v", err)
		}
		return b.Samples()
	}

	testutil.RequireSliceNearlyEqual(t, render(WithSeed(12)), render(WithSeed(12)), 0)
	if d, _ := testutil.MaxAbsDiff(render(), render()); d == 0 {
		t.Fatal("unseeded calls should draw different noise")
	}
}

func TestChannelsAndAmplitude(t *testing.T) {
	b, err := BLN(signal.Square, 0.05, curve.Const(80), curve.Const(120),
		WithChannels(2), WithAmplitude(0.5), WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	if b.Channels() != 2 || b.SampleRate() != core.DefaultSampleRate {
		t.Fatalf("format = %v", b)
	}
	testutil.RequireSliceNearlyEqual(t, b.Channel(0), b.Channel(1), 0)
	if p := signal.Peak(b.Samples()); p != 0.5 {
		t.Fatalf("square peak = %v, want 0.5", p)
	}
}

func TestPairOfConstantsDrawsOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	low := curve.Between(80, 100, rng)
	high := curve.Between(150, 200, rng)
	if float64(low) < 80 || float64(low) > 100 || float64(high) < 150 || float64(high) > 200 {
		t.Fatalf("bounds %v, %v outside their pairs", low, high)
	}
	b, err := BLN(signal.Sine, 1, low, high, WithRand(rng), WithChannels(1))
	if err != nil {
		t.Fatal(err)
	}
	f := meanFreq(b.Samples())
	if f < float64(low)*0.95 || f > float64(high)*1.05 {
		t.Fatalf("mean frequency %.1f outside [%v, %v]", f, low, high)
	}
}

func TestErrors(t *testing.T) {
	if _, err := BLN(signal.Sine, -1, curve.Const(1), curve.Const(2)); !errors.Is(err, core.ErrRange) {
		t.Fatalf("negative length err = %v, want ErrRange", err)
	}
	if _, err := BLNNamed("pink", 1, curve.Const(1), curve.Const(2)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("unknown waveform err = %v, want ErrConfiguration", err)
	}

	empty, err := BLNNamed("tri", 0, curve.Const(1), curve.Const(2))
	if err != nil || !empty.IsEmpty() {
		t.Fatalf("zero length: %v, %v", empty, err)
	}
}
