package multiband

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/sound"
	"github.com/cwbudde/algo-grain/internal/testutil"
)

func stereoSine(t *testing.T, freq float64, frames int) *sound.Buffer {
	t.Helper()
	ch := testutil.DeterministicSine(freq, 44100, 0.8, frames)
	b, err := sound.FromInterleaved(testutil.Interleave(ch, ch), 2, 44100)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEdgesLogSpaced(t *testing.T) {
	edges := Edges(3, 44100, 40)
	if len(edges) != 2 {
		t.Fatalf("len = %d, want 2", len(edges))
	}
	r1, r2 := edges[0]/40, edges[1]/edges[0]
	r3 := 22050 / edges[1]
	if math.Abs(r1-r2) > 1e-9 || math.Abs(r2-r3) > 1e-9 {
		t.Fatalf("edges %v are not log-spaced", edges)
	}
	if Edges(1, 44100, 40) != nil {
		t.Fatal("one band has no inner edges")
	}
}

func TestSplitReconstructsPeak(t *testing.T) {
	for name, opts := range map[string][]Option{
		"crossover": nil,
		"spectral":  {WithSpectral()},
	} {
		t.Run(name, func(t *testing.T) {
			src := stereoSine(t, 1000, 22050)
			bands, err := Split(src, 3, opts...)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(bands) != 3 {
				t.Fatalf("%d bands, want 3", len(bands))
			}
			for i, b := range bands {
				if b.Len() != src.Len() || b.Channels() != 2 || b.SampleRate() != 44100 {
					t.Fatalf("band %d format %v, want %v", i, b, src)
				}
			}

			sum := sound.Mix(bands...)
			half := len(src.Samples()) / 2
			want := testutil.PeakAbs(src.Samples()[half:])
			got := testutil.PeakAbs(sum.Samples()[half:])
			if db := 20 * math.Log10(got/want); math.Abs(db) > 1 {
				t.Fatalf("reconstructed peak %.4f vs %.4f (%.3f dB)", got, want, db)
			}
		})
	}
}

func TestSpectralIsExact(t *testing.T) {
	noise := testutil.DeterministicNoise(8, 0.5, 3000)
	src, err := sound.FromInterleaved(noise, 1, 44100)
	if err != nil {
		t.Fatal(err)
	}
	bands, err := Split(src, 4, WithSpectral())
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, sound.Mix(bands...).Samples(), noise, 1e-9)

	// The 1 kHz tone lands in exactly one band.
	tone := stereoSine(t, 1000, 8192)
	parts, err := Split(tone, 3, WithSpectral())
	if err != nil {
		t.Fatal(err)
	}
	mid := func(b *sound.Buffer) []float64 { return b.Samples()[4096:12288] }
	if p := testutil.PeakAbs(mid(parts[1])); p < 0.7 {
		t.Fatalf("middle band peak %v, want the tone", p)
	}
	if p := testutil.PeakAbs(mid(parts[2])); p > 0.05 {
		t.Fatalf("high band peak %v, want near silence", p)
	}
}

func TestSplitOneBandCopies(t *testing.T) {
	src := stereoSine(t, 200, 100)
	bands, err := Split(src, 1)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, bands[0].Samples(), src.Samples(), 0)
	bands[0].Samples()[0] = 9
	if src.Samples()[0] == 9 {
		t.Fatal("single band must be a copy")
	}
}

func TestSplitErrors(t *testing.T) {
	src := stereoSine(t, 200, 100)
	for _, n := range []int{0, -2} {
		if _, err := Split(src, n); !errors.Is(err, core.ErrConfiguration) {
			t.Fatalf("n=%d err = %v, want ErrConfiguration", n, err)
		}
	}
	if _, err := Split(src, 3, WithOrder(3)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("odd order err = %v, want ErrConfiguration", err)
	}
	if _, err := Split(src, 3, WithMinFreq(30000)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("min freq above nyquist err = %v, want ErrConfiguration", err)
	}
}

func TestSplitEmptyBuffer(t *testing.T) {
	empty := sound.New(0)
	for _, opts := range [][]Option{nil, {WithSpectral()}} {
		bands, err := Split(empty, 3, opts...)
		if err != nil {
			t.Fatal(err)
		}
		for _, b := range bands {
			if !b.IsEmpty() {
				t.Fatal("bands of an empty buffer should be empty")
			}
		}
	}
}
