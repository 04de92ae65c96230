package filter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// DefaultQ is the Butterworth quality factor of a single section.
const DefaultQ = 1 / math.Sqrt2

func checkFreq(freq, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("filter: sample rate must be > 0, got %g: %w", sampleRate, core.ErrConfiguration)
	}
	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return fmt.Errorf("filter: frequency must be in (0, %g), got %g: %w", sampleRate/2, freq, core.ErrRange)
	}
	return nil
}

func rbj(freq, q, sampleRate float64) (cw, alpha float64, err error) {
	if err := checkFreq(freq, sampleRate); err != nil {
		return 0, 0, err
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = DefaultQ
	}
	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q), nil
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	return Coefficients{B0: b0 / a0, B1: b1 / a0, B2: b2 / a0, A1: a1 / a0, A2: a2 / a0}
}

// Lowpass designs an RBJ lowpass section.
func Lowpass(freq, q, sampleRate float64) (Coefficients, error) {
	cw, alpha, err := rbj(freq, q, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}
	b := (1 - cw) / 2
	return normalize(b, 2*b, b, 1+alpha, -2*cw, 1-alpha), nil
}

// Highpass designs an RBJ highpass section.
func Highpass(freq, q, sampleRate float64) (Coefficients, error) {
	cw, alpha, err := rbj(freq, q, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}
	b := (1 + cw) / 2
	return normalize(b, -2*b, b, 1+alpha, -2*cw, 1-alpha), nil
}

// Bandpass designs an RBJ bandpass section with 0 dB peak gain.
func Bandpass(freq, q, sampleRate float64) (Coefficients, error) {
	cw, alpha, err := rbj(freq, q, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}
	return normalize(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha), nil
}

// butterworthQ is the Q of section index in an order-N Butterworth
// cascade.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

func firstOrder(freq, sampleRate float64, high bool) Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)
	if high {
		return Coefficients{B0: norm, B1: -norm, A1: (k - 1) * norm}
	}
	return Coefficients{B0: k * norm, B1: k * norm, A1: (k - 1) * norm}
}

func butterworth(freq float64, order int, sampleRate float64, high bool) ([]Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("filter: butterworth order must be > 0, got %d: %w", order, core.ErrConfiguration)
	}
	if err := checkFreq(freq, sampleRate); err != nil {
		return nil, err
	}

	design := Lowpass
	if high {
		design = Highpass
	}

	sections := make([]Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		c, err := design(freq, butterworthQ(order, i), sampleRate)
		if err != nil {
			return nil, err
		}
		sections = append(sections, c)
	}
	if order%2 != 0 {
		sections = append(sections, firstOrder(freq, sampleRate, high))
	}
	return sections, nil
}

// ButterworthLP designs an order-N Butterworth lowpass cascade. Odd
// orders end with a first-order section.
func ButterworthLP(freq float64, order int, sampleRate float64) ([]Coefficients, error) {
	return butterworth(freq, order, sampleRate, false)
}

// ButterworthHP designs an order-N Butterworth highpass cascade.
func ButterworthHP(freq float64, order int, sampleRate float64) ([]Coefficients, error) {
	return butterworth(freq, order, sampleRate, true)
}

func linkwitzRiley(freq float64, order int, sampleRate float64, high bool) ([]Coefficients, error) {
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("filter: linkwitz-riley order must be a positive even integer, got %d: %w",
			order, core.ErrConfiguration)
	}
	bw, err := butterworth(freq, order/2, sampleRate, high)
	if err != nil {
		return nil, err
	}
	return append(bw, bw...), nil
}

// LinkwitzRileyLP designs an order-2N Linkwitz-Riley lowpass as two
// cascaded order-N Butterworth filters.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) ([]Coefficients, error) {
	return linkwitzRiley(freq, order, sampleRate, false)
}

// LinkwitzRileyHP designs an order-2N Linkwitz-Riley highpass. For
// orders of the form 4k+2 the polarity is inverted so that it sums with
// [LinkwitzRileyLP] to an allpass.
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) ([]Coefficients, error) {
	sections, err := linkwitzRiley(freq, order, sampleRate, true)
	if err != nil {
		return nil, err
	}
	if order%4 == 2 {
		sections[0].B0 = -sections[0].B0
		sections[0].B1 = -sections[0].B1
		sections[0].B2 = -sections[0].B2
	}
	return sections, nil
}
