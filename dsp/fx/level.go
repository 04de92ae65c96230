package fx

import (
	"github.com/cwbudde/algo-grain/dsp/signal"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// Norm scales buf so its peak absolute sample equals level.
func Norm(buf *sound.Buffer, level float64) (*sound.Buffer, error) {
	samples, err := signal.Normalize(buf.Samples(), level)
	if err != nil {
		return nil, err
	}
	return sound.FromInterleaved(samples, buf.Channels(), buf.SampleRate())
}
