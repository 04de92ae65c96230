package signal

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Waveform is a periodic oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Square
	Saw
)

var waveformNames = map[string]Waveform{
	"sine":     Sine,
	"sin":      Sine,
	"tri":      Triangle,
	"triangle": Triangle,
	"square":   Square,
	"sqr":      Square,
	"saw":      Saw,
}

// ParseWaveform resolves a waveform name, case-insensitively.
func ParseWaveform(name string) (Waveform, error) {
	w, ok := waveformNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("signal: unknown waveform %q: %w", name, core.ErrConfiguration)
	}
	return w, nil
}

// String implements fmt.Stringer.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Saw:
		return "saw"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// At evaluates one cycle of the waveform at phase, measured in cycles.
// Phase wraps, so At(p) == At(p+1). Every waveform starts at or near 0
// and spans [-1, 1].
func (w Waveform) At(phase float64) float64 {
	p := phase - math.Floor(phase)

	switch w {
	case Triangle:
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return 2 - 4*p
		default:
			return 4*p - 4
		}
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Saw:
		if p < 0.5 {
			return 2 * p
		}
		return 2*p - 2
	default:
		return math.Sin(2 * math.Pi * p)
	}
}
