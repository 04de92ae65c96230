package fx

import (
	"fmt"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
	"github.com/cwbudde/algo-grain/dsp/grain"
	"github.com/cwbudde/algo-grain/dsp/shape"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// DefaultGrainSeconds is the grain length used by Stretch.
const DefaultGrainSeconds = 0.06

// Stretch changes the length of buf to frames without changing pitch.
// Hann-windowed grains are overlap-added at half-grain spacing in the
// output, each read around the matching source position. Grains never
// outgrow the source, and the first grain holds full level over its
// rising half so the output does not fade in.
func Stretch(buf *sound.Buffer, frames int) (*sound.Buffer, error) {
	if frames < 0 {
		return nil, fmt.Errorf("fx: stretch target must be >= 0 frames, got %d: %w", frames, core.ErrRange)
	}
	format := []core.ProcessorOption{core.WithSampleRate(buf.SampleRate()), core.WithChannels(buf.Channels())}
	out := sound.New(frames, format...)
	if frames == 0 || buf.IsEmpty() {
		return out, nil
	}

	n := buf.Len()
	size := max(min(core.SecondsToFrames(DefaultGrainSeconds, buf.SampleRate()), n), 4)
	span := max(n-size, 0)
	scale := float64(n) / float64(frames)

	hann, err := shape.New(shape.Hann)
	if err != nil {
		return nil, err
	}

	at := 0
	for i, hop := range grain.Lengths(frames, size/2) {
		center := (float64(at) + float64(size)/2) * scale
		start := min(max(int(center-float64(size)/2+0.5), 0), span)

		piece := sound.New(size, format...)
		piece.DubFrames(buf.Slice(start, start+size), 0)
		piece.ApplyEnvelope(grainWindow{hann: hann, head: i == 0})
		out.DubFrames(piece, at)
		at += hop
	}

	return out.Fill(frames), nil
}

// grainWindow is a Hann window whose rising half can be held at 1.
type grainWindow struct {
	hann *curve.Curve
	head bool
}

func (w grainWindow) Interp(phase float64) float64 {
	if w.head && phase < 0.5 {
		return 1
	}
	return w.hann.Interp(phase)
}

// Transpose shifts pitch by factor while keeping the length.
func Transpose(buf *sound.Buffer, factor float64) (*sound.Buffer, error) {
	if err := checkSpeed(factor); err != nil {
		return nil, err
	}
	n := buf.Len()
	stretched, err := Stretch(buf, int(float64(n)*factor+0.5))
	if err != nil {
		return nil, err
	}
	sped, err := Speed(stretched, factor)
	if err != nil {
		return nil, err
	}
	out := sound.New(n, core.WithSampleRate(buf.SampleRate()), core.WithChannels(buf.Channels()))
	out.DubFrames(sped.Fill(min(sped.Len(), n)), 0)
	return out, nil
}
