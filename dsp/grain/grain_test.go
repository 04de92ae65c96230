package grain

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/sound"
	"github.com/cwbudde/algo-grain/internal/testutil"
)

func source(t *testing.T, frames int) *sound.Buffer {
	t.Helper()
	samples := make([]float64, frames*2)
	for i := range samples {
		samples[i] = float64(i)
	}
	b, err := sound.FromInterleaved(samples, 2, 1000)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFixedLengthCoversSource(t *testing.T) {
	for _, frames := range []int{0, 1, 9, 10, 11, 100, 257} {
		src := source(t, frames)
		total, count := 0, 0
		var joined []float64
		for g := range Iter(src, 10) {
			count++
			total += g.Len()
			if g.Len() != 10 && total != frames {
				t.Fatalf("frames=%d: non-final grain of length %d", frames, g.Len())
			}
			joined = append(joined, g.Samples()...)
		}
		if total != frames {
			t.Fatalf("frames=%d: grains cover %d frames", frames, total)
		}
		if want := (frames + 9) / 10; count != want {
			t.Fatalf("frames=%d: %d grains, want %d", frames, count, want)
		}
		testutil.RequireSliceNearlyEqual(t, joined, src.Samples(), 0)
	}
}

func TestRandomLengthsWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := source(t, 5000)

	var lengths []int
	total := 0
	for g := range Iter(src, 20, WithMaxLength(90), WithRand(rng)) {
		lengths = append(lengths, g.Len())
		total += g.Len()
	}
	if total != 5000 {
		t.Fatalf("grains cover %d frames, want 5000", total)
	}

	distinct := map[int]bool{}
	for i, n := range lengths[:len(lengths)-1] {
		if n < 20 || n > 90 {
			t.Fatalf("grain %d has length %d outside [20, 90]", i, n)
		}
		distinct[n] = true
	}
	if len(distinct) < 10 {
		t.Fatalf("only %d distinct lengths, want a spread", len(distinct))
	}
}

func TestLengthsMatchIter(t *testing.T) {
	src := source(t, 777)

	planned := Lengths(src.Len(), 5, WithMaxLength(40), WithRand(rand.New(rand.NewSource(9))))
	var got []int
	for g := range Iter(src, 5, WithMaxLength(40), WithRand(rand.New(rand.NewSource(9)))) {
		got = append(got, g.Len())
	}
	if len(got) != len(planned) {
		t.Fatalf("Iter produced %d grains, Lengths planned %d", len(got), len(planned))
	}
	for i := range got {
		if got[i] != planned[i] {
			t.Fatalf("grain %d: %d vs planned %d", i, got[i], planned[i])
		}
	}
}

func TestUnseededLengthsRedraw(t *testing.T) {
	a := Lengths(100000, 10, WithMaxLength(1000))
	b := Lengths(100000, 10, WithMaxLength(1000))
	if len(a) != len(b) {
		return
	}
	for i := range a {
		if a[i] != b[i] {
			return
		}
	}
	t.Fatal("unseeded grain plans should differ between calls")
}

func TestSingleUse(t *testing.T) {
	seq := Iter(source(t, 30), 10)
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 3 || second != 0 {
		t.Fatalf("first pass %d grains, second pass %d, want 3 and 0", first, second)
	}
}

func TestEarlyBreakAndCoercion(t *testing.T) {
	src := source(t, 50)
	for g := range Iter(src, 10) {
		g.Samples()[0] = -1
		break
	}
	if src.Samples()[0] != 0 {
		t.Fatal("grains must not alias the source")
	}

	if n := len(Lengths(4, 0)); n != 4 {
		t.Fatalf("minLength 0 should act as 1, got %d grains", n)
	}
	for _, n := range Lengths(100, 30, WithMaxLength(10), WithRand(rand.New(rand.NewSource(core.DefaultSeed))))[:3] {
		if n < 10 || n > 30 {
			t.Fatalf("swapped bounds: length %d outside [10, 30]", n)
		}
	}
}
