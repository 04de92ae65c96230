package shape

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
)

// Kind identifies a shape.
//
// Every deterministic kind tolerates an inverted range: with low > high
// the profile is mirrored between the bounds. Random rejects an inverted
// range with ErrRange.
type Kind int

const (
	// Sine is a half sine: 0 at both ends, 1 in the middle.
	Sine Kind = iota
	// Triangle rises linearly to 1 at the midpoint and falls back to 0.
	Triangle
	// Hann is the raised cosine window.
	Hann
	// HannIn is the rising half of the Hann window, 0 to 1.
	HannIn
	// HannOut is the falling half of the Hann window, 1 to 0.
	HannOut
	// Sinc is sin(pi x)/(pi x) over [-lobes, lobes], min-max normalized.
	Sinc
	// PluckIn is a slow exponential rise with a fast release.
	PluckIn
	// PluckOut is a fast attack with a slow exponential decay.
	PluckOut
	// Saw rises linearly from 0 to 1.
	Saw
	// Random draws every entry uniformly from the range.
	Random
	// Table is an explicit list of control points.
	Table
)

const (
	// DefaultResolution is the table length used when none is configured.
	DefaultResolution = 1024
	// DefaultLobes is the number of sinc lobes on each side of the peak.
	DefaultLobes = 8

	pluckAttack = 0.01
	pluckDecay  = 6.0
)

var kindNames = map[Kind]string{
	Sine:     "sine",
	Triangle: "triangle",
	Hann:     "hann",
	HannIn:   "hannin",
	HannOut:  "hannout",
	Sinc:     "sinc",
	PluckIn:  "pluckin",
	PluckOut: "pluckout",
	Saw:      "saw",
	Random:   "random",
	Table:    "table",
}

var kindAliases = map[string]Kind{
	"sin":      Sine,
	"sine":     Sine,
	"sinewave": Sine,
	"tri":      Triangle,
	"triangle": Triangle,
	"hann":     Hann,
	"hannin":   HannIn,
	"hannout":  HannOut,
	"hanning":  Hann,
	"sinc":     Sinc,
	"pluckin":  PluckIn,
	"pluckout": PluckOut,
	"pluck":    PluckOut,
	"saw":      Saw,
	"line":     Saw,
	"rnd":      Random,
	"random":   Random,
	"table":    Table,
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Stochastic reports whether the kind draws from a random source.
func (k Kind) Stochastic() bool { return k == Random }

// ParseKind resolves a shape name or alias, case-insensitively.
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("shape: unknown kind %q: %w", name, core.ErrConfiguration)
	}
	return k, nil
}

// Kinds lists every named kind in declaration order.
func Kinds() []Kind {
	return []Kind{Sine, Triangle, Hann, HannIn, HannOut, Sinc, PluckIn, PluckOut, Saw, Random, Table}
}

// Option configures shape materialization.
type Option func(*config)

type config struct {
	low, high  curve.Bound
	resolution int
	lobes      int
	rng        *rand.Rand
	table      []float64
}

func defaultConfig() config {
	return config{
		low:        curve.Const(0),
		high:       curve.Const(1),
		resolution: DefaultResolution,
		lobes:      DefaultLobes,
	}
}

// WithRange maps the normalized shape onto [low, high]. Either bound may
// be a constant or another curve. Deterministic kinds mirror an inverted
// range; Random fails with ErrRange wherever low exceeds high.
func WithRange(low, high curve.Bound) Option {
	return func(c *config) {
		if low != nil {
			c.low = low
		}
		if high != nil {
			c.high = high
		}
	}
}

// WithResolution sets the table length. Values below 2 are rejected by
// [New].
func WithResolution(n int) Option {
	return func(c *config) {
		c.resolution = n
	}
}

// WithLobes sets the number of sinc lobes on each side of the peak.
func WithLobes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.lobes = n
		}
	}
}

// WithRand injects the random source used by stochastic kinds. Without
// it or WithSeed every materialization draws from a fresh seed.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithSeed seeds a private random source for stochastic kinds.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTable supplies the control points for the Table kind.
func WithTable(values []float64) Option {
	copied := append([]float64(nil), values...)

	return func(c *config) {
		c.table = copied
	}
}

// Generate materializes kind into a table.
func Generate(kind Kind, opts ...Option) ([]float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if kind == Table {
		return generateTable(cfg)
	}

	if cfg.resolution < 2 {
		return nil, fmt.Errorf("shape: resolution must be >= 2, got %d: %w", cfg.resolution, core.ErrConfiguration)
	}

	switch kind {
	case Random:
		return generateRandom(cfg)
	case Sine, Triangle, Hann, HannIn, HannOut, Sinc, PluckIn, PluckOut, Saw:
	default:
		return nil, fmt.Errorf("shape: unknown kind %v: %w", kind, core.ErrConfiguration)
	}

	out := make([]float64, cfg.resolution)
	for i := range out {
		out[i] = evalShape(kind, samplePosition(i, len(out)), cfg)
	}
	if kind == Sinc {
		normalizeMinMax(out)
	}
	applyRange(out, cfg)

	return out, nil
}

// New materializes kind into a read-only curve.
func New(kind Kind, opts ...Option) (*curve.Curve, error) {
	table, err := Generate(kind, opts...)
	if err != nil {
		return nil, err
	}
	return curve.New(table)
}

// Win resolves name and materializes it over the constant range
// [low, high].
func Win(name string, low, high float64, opts ...Option) (*curve.Curve, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New(kind, append([]Option{WithRange(curve.Const(low), curve.Const(high))}, opts...)...)
}

// FromTable builds a curve from explicit control points. With
// WithResolution the points are linearly resampled; with WithRange they
// are treated as normalized values and mapped onto the range.
func FromTable(values []float64, opts ...Option) (*curve.Curve, error) {
	return New(Table, append([]Option{WithTable(values), WithResolution(0)}, opts...)...)
}

// At evaluates a deterministic kind at x in [0,1] without materializing
// a table. Sinc is returned before min-max normalization is applied to
// the table, so its values range over roughly [-0.22, 1].
func At(kind Kind, x float64) (float64, error) {
	switch kind {
	case Sine, Triangle, Hann, HannIn, HannOut, Sinc, PluckIn, PluckOut, Saw:
		return evalShape(kind, core.Clamp(x, 0, 1), defaultConfig()), nil
	default:
		return 0, fmt.Errorf("shape: kind %v has no continuous form: %w", kind, core.ErrConfiguration)
	}
}

func generateTable(cfg config) ([]float64, error) {
	if len(cfg.table) == 0 {
		return nil, fmt.Errorf("shape: table kind needs at least one point: %w", core.ErrConfiguration)
	}

	out := cfg.table
	if cfg.resolution != 0 {
		if cfg.resolution < 2 {
			return nil, fmt.Errorf("shape: resolution must be >= 2, got %d: %w", cfg.resolution, core.ErrConfiguration)
		}
		src, err := curve.New(cfg.table)
		if err != nil {
			return nil, err
		}
		out = make([]float64, cfg.resolution)
		for i := range out {
			out[i] = src.Interp(samplePosition(i, len(out)))
		}
	} else {
		out = append([]float64(nil), out...)
	}

	applyRange(out, cfg)
	return out, nil
}

func generateRandom(cfg config) ([]float64, error) {
	rng := cfg.rng
	if rng == nil {
		rng = core.NewRand()
	}

	out := make([]float64, cfg.resolution)
	for i := range out {
		p := samplePosition(i, len(out))
		lo, hi := cfg.low.At(p), cfg.high.At(p)
		if lo > hi {
			return nil, fmt.Errorf("shape: random range inverted at phase %.4f (%g > %g): %w", p, lo, hi, core.ErrRange)
		}
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out, nil
}

func evalShape(kind Kind, x float64, cfg config) float64 {
	switch kind {
	case Sine:
		return math.Sin(math.Pi * x)
	case Triangle:
		return triangleAt(x)
	case Hann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case HannIn:
		return 0.5 - 0.5*math.Cos(math.Pi*x)
	case HannOut:
		return 0.5 + 0.5*math.Cos(math.Pi*x)
	case Sinc:
		return sinc((2*x - 1) * float64(cfg.lobes))
	case PluckOut:
		return pluckOutAt(x)
	case PluckIn:
		return pluckOutAt(1 - x)
	case Saw:
		return x
	default:
		return 1
	}
}

func applyRange(table []float64, cfg config) {
	if lo, ok := cfg.low.(curve.Const); ok && lo == 0 {
		if hi, ok := cfg.high.(curve.Const); ok && hi == 1 {
			return
		}
	}

	for i, v := range table {
		p := samplePosition(i, len(table))
		lo := cfg.low.At(p)
		table[i] = lo + (cfg.high.At(p)-lo)*v
	}
}

func normalizeMinMax(table []float64) {
	lo, hi := table[0], table[0]
	for _, v := range table[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return
	}
	for i, v := range table {
		table[i] = (v - lo) / (hi - lo)
	}
}

func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(n) / float64(size-1)
}

func triangleAt(x float64) float64 {
	if x <= 0.5 {
		return 2 * x
	}
	return 2 * (1 - x)
}

// pluckOutAt rises linearly over the attack and then decays
// exponentially, reaching exactly 0 at x = 1.
func pluckOutAt(x float64) float64 {
	if x < pluckAttack {
		return x / pluckAttack
	}
	d := (x - pluckAttack) / (1 - pluckAttack)
	floor := math.Exp(-pluckDecay)
	return (math.Exp(-pluckDecay*d) - floor) / (1 - floor)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
