package shape

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
)

func TestParseKindAliases(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{name: "sine", want: Sine},
		{name: "SIN", want: Sine},
		{name: "tri", want: Triangle},
		{name: "hannin", want: HannIn},
		{name: "hanning", want: Hann},
		{name: "HannOut", want: HannOut},
		{name: " sinc ", want: Sinc},
		{name: "pluckout", want: PluckOut},
		{name: "pluckin", want: PluckIn},
		{name: "rnd", want: Random},
		{name: "line", want: Saw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.name)
			if err != nil {
				t.Fatalf("ParseKind(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Fatalf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("wobble")
	if !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind(99))
	if !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestResolutionValidation(t *testing.T) {
	for _, n := range []int{-4, 0, 1} {
		if _, err := New(Hann, WithResolution(n)); !errors.Is(err, core.ErrConfiguration) {
			t.Fatalf("resolution %d: err = %v, want ErrConfiguration", n, err)
		}
	}

	c, err := New(Hann, WithResolution(64))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Len() != 64 {
		t.Fatalf("Len() = %d, want 64", c.Len())
	}
}

func TestInterpEndpointsMatchTable(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			opts := []Option{WithResolution(128), WithSeed(5), WithRange(curve.Const(-2), curve.Const(3))}
			if kind == Table {
				opts = append(opts, WithTable([]float64{0, 0.3, 1, 0.2}))
			}
			c, err := New(kind, opts...)
			if err != nil {
				t.Fatalf("New(%v) error = %v", kind, err)
			}
			table := c.Values()
			if c.Interp(0) != table[0] {
				t.Fatalf("Interp(0) = %v, want %v", c.Interp(0), table[0])
			}
			if c.Interp(1) != table[len(table)-1] {
				t.Fatalf("Interp(1) = %v, want %v", c.Interp(1), table[len(table)-1])
			}

			// Midway between entries 10 and 11 lies on the line joining them.
			p := 10.5 / float64(len(table)-1)
			want := (table[10] + table[11]) / 2
			if got := c.Interp(p); math.Abs(got-want) > 1e-9 {
				t.Fatalf("Interp(%v) = %v, want %v", p, got, want)
			}
		})
	}
}

func TestDeterministicShapesStayInRange(t *testing.T) {
	for _, kind := range []Kind{Sine, Triangle, Hann, HannIn, HannOut, Sinc, PluckIn, PluckOut, Saw} {
		t.Run(kind.String(), func(t *testing.T) {
			c, err := New(kind, WithRange(curve.Const(0.1), curve.Const(1)))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if c.Min() < 0.1-1e-12 || c.Max() > 1+1e-12 {
				t.Fatalf("range [%v, %v] outside [0.1, 1]", c.Min(), c.Max())
			}
		})
	}
}

func TestShapeProfiles(t *testing.T) {
	hann, err := New(Hann, WithResolution(101))
	if err != nil {
		t.Fatal(err)
	}
	if hann.Interp(0) != 0 || math.Abs(hann.Interp(0.5)-1) > 1e-12 || math.Abs(hann.Interp(1)) > 1e-12 {
		t.Fatalf("hann profile unexpected: %v %v %v", hann.Interp(0), hann.Interp(0.5), hann.Interp(1))
	}

	hannIn, err := New(HannIn, WithResolution(101))
	if err != nil {
		t.Fatal(err)
	}
	hannOut, err := New(HannOut, WithResolution(101))
	if err != nil {
		t.Fatal(err)
	}
	if hannIn.Interp(0) != 0 || math.Abs(hannIn.Interp(1)-1) > 1e-12 || math.Abs(hannIn.Interp(0.5)-0.5) > 1e-12 {
		t.Fatalf("hannin profile unexpected: %v %v %v", hannIn.Interp(0), hannIn.Interp(0.5), hannIn.Interp(1))
	}
	for i, v := range hannIn.Values()[1:] {
		if v < hannIn.Values()[i] {
			t.Fatalf("hannin falls at index %d", i+1)
		}
		if math.Abs(hannOut.Values()[i+1]-(1-v)) > 1e-12 {
			t.Fatalf("hannout should mirror hannin at index %d", i+1)
		}
	}

	pluck, err := New(PluckOut)
	if err != nil {
		t.Fatal(err)
	}
	if pluck.Max() < 0.99 || pluck.Interp(0.05) < 0.7 {
		t.Fatalf("pluckout should peak right after the attack, max %v", pluck.Max())
	}
	if math.Abs(pluck.Interp(1)) > 1e-12 {
		t.Fatalf("pluckout should end at 0, got %v", pluck.Interp(1))
	}
	if pluck.Interp(0.25) <= pluck.Interp(0.5) {
		t.Fatal("pluckout should decay monotonically after the attack")
	}

	in, err := New(PluckIn)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(in.Interp(0.3)-pluck.Interp(0.7)) > 1e-3 {
		t.Fatalf("pluckin should mirror pluckout: %v vs %v", in.Interp(0.3), pluck.Interp(0.7))
	}

	sincCurve, err := New(Sinc)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sincCurve.Max()-1) > 1e-3 || sincCurve.Min() != 0 {
		t.Fatalf("sinc should be normalized to [0,1], got [%v, %v]", sincCurve.Min(), sincCurve.Max())
	}
}

func TestInvertedRangeToleratedByDeterministicKinds(t *testing.T) {
	c, err := New(Saw, WithRange(curve.Const(10), curve.Const(0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Interp(0) != 10 || c.Interp(1) != 0 {
		t.Fatalf("inverted saw = %v..%v, want 10..0", c.Interp(0), c.Interp(1))
	}
}

func TestRandomBoundedAndStochastic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a, err := Win("rnd", 9000, 11000, WithRand(rng))
	if err != nil {
		t.Fatalf("Win() error = %v", err)
	}
	b, err := Win("rnd", 9000, 11000, WithRand(rng))
	if err != nil {
		t.Fatalf("Win() error = %v", err)
	}

	for _, c := range []*curve.Curve{a, b} {
		if c.Min() < 9000 || c.Max() > 11000 {
			t.Fatalf("random table [%v, %v] outside [9000, 11000]", c.Min(), c.Max())
		}
	}

	same := true
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("two random materializations from one source should differ")
	}
}

func TestRandomDeterministicPerSeed(t *testing.T) {
	a, err := New(Random, WithSeed(4))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Random, WithSeed(4))
	if err != nil {
		t.Fatal(err)
	}
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("index %d differs with same seed: %v vs %v", i, av[i], bv[i])
		}
	}
}

func TestRandomRedrawsWithoutSource(t *testing.T) {
	a, err := New(Random, WithRange(curve.Const(0), curve.Const(1)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Random, WithRange(curve.Const(0), curve.Const(1)))
	if err != nil {
		t.Fatal(err)
	}
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			return
		}
	}
	t.Fatal("unseeded random tables should differ between materializations")
}

func TestRandomInvertedRangeFails(t *testing.T) {
	_, err := Win("random", 5, 1)
	if !errors.Is(err, core.ErrRange) {
		t.Fatalf("err = %v, want ErrRange", err)
	}
}

func TestNestedRange(t *testing.T) {
	upper, err := Win("saw", 100, 200)
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(Triangle, WithRange(curve.Const(0), upper), WithResolution(3))
	if err != nil {
		t.Fatal(err)
	}
	// Midpoint: triangle peaks at 1, upper bound is 150 there.
	if got := c.Interp(0.5); math.Abs(got-150) > 1e-9 {
		t.Fatalf("nested midpoint = %v, want 150", got)
	}
}

func TestFromTable(t *testing.T) {
	c, err := FromTable([]float64{0, 1, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 without resampling", c.Len())
	}

	r, err := FromTable([]float64{0, 1}, WithResolution(5), WithRange(curve.Const(10), curve.Const(20)))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{10, 12.5, 15, 17.5, 20}
	for i, v := range r.Values() {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, v, want[i])
		}
	}

	if _, err := FromTable(nil); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("empty table err = %v, want ErrConfiguration", err)
	}
}

func TestAtContinuous(t *testing.T) {
	v, err := At(Triangle, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.5 {
		t.Fatalf("At(Triangle, 0.25) = %v, want 0.5", v)
	}
	if _, err := At(Random, 0.5); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("At(Random) err = %v, want ErrConfiguration", err)
	}
}
