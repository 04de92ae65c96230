package fx

import (
	"github.com/cwbudde/algo-grain/dsp/filter"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// FilterOrder is the Butterworth order used by LPF and HPF.
const FilterOrder = 4

func applyChain(buf *sound.Buffer, coeffs []filter.Coefficients) (*sound.Buffer, error) {
	return eachChannel(buf, func(_ int, x []float64) ([]float64, error) {
		filter.NewChain(coeffs).ProcessBlock(x)
		return x, nil
	})
}

// LPF applies a Butterworth lowpass at cutoff Hz.
func LPF(buf *sound.Buffer, cutoff float64) (*sound.Buffer, error) {
	coeffs, err := filter.ButterworthLP(cutoff, FilterOrder, float64(buf.SampleRate()))
	if err != nil {
		return nil, err
	}
	return applyChain(buf, coeffs)
}

// HPF applies a Butterworth highpass at cutoff Hz.
func HPF(buf *sound.Buffer, cutoff float64) (*sound.Buffer, error) {
	coeffs, err := filter.ButterworthHP(cutoff, FilterOrder, float64(buf.SampleRate()))
	if err != nil {
		return nil, err
	}
	return applyChain(buf, coeffs)
}

// BPF applies a two-section bandpass centered on center Hz.
func BPF(buf *sound.Buffer, center, q float64) (*sound.Buffer, error) {
	c, err := filter.Bandpass(center, q, float64(buf.SampleRate()))
	if err != nil {
		return nil, err
	}
	return applyChain(buf, []filter.Coefficients{c, c})
}
