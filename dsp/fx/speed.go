package fx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
	"github.com/cwbudde/algo-grain/dsp/interp"
	"github.com/cwbudde/algo-grain/dsp/resample"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

const minWarpSpeed = 0.01

func checkSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return fmt.Errorf("fx: speed must be finite and > 0, got %g: %w", speed, core.ErrRange)
	}
	return nil
}

// Speed plays buf back at speed times the original rate, changing pitch
// and length together. The result has round(len/speed) frames.
func Speed(buf *sound.Buffer, speed float64, opts ...resample.Option) (*sound.Buffer, error) {
	if err := checkSpeed(speed); err != nil {
		return nil, err
	}
	if speed == 1 {
		return buf.Copy(), nil
	}
	return eachChannel(buf, func(_ int, x []float64) ([]float64, error) {
		return resample.Stretch(x, 1/speed, opts...)
	})
}

// VSpeed plays each channel at its own speed. The speed list cycles over
// the channels. Channels are read with cubic interpolation, and the
// result is as long as the slowest channel.
func VSpeed(buf *sound.Buffer, speeds ...float64) (*sound.Buffer, error) {
	if len(speeds) == 0 {
		return buf.Copy(), nil
	}
	for _, s := range speeds {
		if err := checkSpeed(s); err != nil {
			return nil, err
		}
	}

	reader := interp.NewLagrangeInterpolator(3)
	return eachChannel(buf, func(c int, x []float64) ([]float64, error) {
		speed := speeds[c%len(speeds)]
		n := int(math.Round(float64(len(x)) / speed))
		out := make([]float64, n)
		for i := range out {
			out[i] = reader.At(x, float64(i)*speed)
		}
		return out, nil
	})
}

// Warp plays buf at a speed that changes over the course of the output,
// read from speed at the normalized input position. Playback stops when
// the input is exhausted. Speeds below minWarpSpeed are raised to it.
func Warp(buf *sound.Buffer, speed curve.Bound) (*sound.Buffer, error) {
	if speed == nil {
		return nil, fmt.Errorf("fx: warp speed must not be nil: %w", core.ErrConfiguration)
	}

	n := buf.Len()
	if n == 0 {
		return buf.Copy(), nil
	}

	var positions []float64
	for pos := 0.0; pos <= float64(n-1); {
		positions = append(positions, pos)
		s := speed.At(pos / float64(n))
		if s < minWarpSpeed || math.IsNaN(s) {
			s = minWarpSpeed
		}
		pos += s
	}

	reader := interp.NewLagrangeInterpolator(3)
	return eachChannel(buf, func(_ int, x []float64) ([]float64, error) {
		out := make([]float64, len(positions))
		for i, p := range positions {
			out[i] = reader.At(x, p)
		}
		return out, nil
	})
}
