package filter

import (
	"fmt"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Crossover splits a signal into complementary Linkwitz-Riley lowpass
// and highpass outputs whose sum is allpass.
type Crossover struct {
	lp, hp *Chain
	freq   float64
}

// NewCrossover designs a two-way crossover at freq.
func NewCrossover(freq float64, order int, sampleRate float64) (*Crossover, error) {
	lp, err := LinkwitzRileyLP(freq, order, sampleRate)
	if err != nil {
		return nil, err
	}
	hp, err := LinkwitzRileyHP(freq, order, sampleRate)
	if err != nil {
		return nil, err
	}
	return &Crossover{lp: NewChain(lp), hp: NewChain(hp), freq: freq}, nil
}

// Freq returns the crossover frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// ProcessBlock writes the lowpass and highpass parts of input to lo and
// hi. All three slices must have the same length.
func (c *Crossover) ProcessBlock(input, lo, hi []float64) {
	copy(lo, input)
	copy(hi, input)
	c.lp.ProcessBlock(lo)
	c.hp.ProcessBlock(hi)
}

// Reset clears both chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}

// MultiBand cascades two-way crossovers: each stage's highpass output
// feeds the next stage. N frequencies give N+1 bands, lowest first.
type MultiBand struct {
	stages []*Crossover
}

// NewMultiBand designs a cascade at the given strictly ascending
// frequencies.
func NewMultiBand(freqs []float64, order int, sampleRate float64) (*MultiBand, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("filter: multiband needs at least one frequency: %w", core.ErrConfiguration)
	}

	stages := make([]*Crossover, len(freqs))
	for i, f := range freqs {
		if i > 0 && f <= freqs[i-1] {
			return nil, fmt.Errorf("filter: frequencies must be strictly ascending, got %.1f after %.1f: %w",
				f, freqs[i-1], core.ErrConfiguration)
		}
		xo, err := NewCrossover(f, order, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("filter: stage %d: %w", i, err)
		}
		stages[i] = xo
	}
	return &MultiBand{stages: stages}, nil
}

// Bands returns the number of output bands.
func (m *MultiBand) Bands() int { return len(m.stages) + 1 }

// ProcessBlock returns one block per band, each as long as input.
func (m *MultiBand) ProcessBlock(input []float64) [][]float64 {
	n := len(input)
	out := make([][]float64, m.Bands())
	for i := range out {
		out[i] = make([]float64, n)
	}

	rest := append([]float64(nil), input...)
	hi := make([]float64, n)
	for i, stage := range m.stages {
		stage.ProcessBlock(rest, out[i], hi)
		rest, hi = hi, rest
	}
	copy(out[len(out)-1], rest)
	return out
}

// Reset clears every stage.
func (m *MultiBand) Reset() {
	for _, s := range m.stages {
		s.Reset()
	}
}
