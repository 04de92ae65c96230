package fx

import "github.com/cwbudde/algo-grain/dsp/sound"

// eachChannel runs fn over every channel of buf and reassembles the
// results. Channels may come back with different lengths; shorter ones
// are padded with silence.
func eachChannel(buf *sound.Buffer, fn func(c int, x []float64) ([]float64, error)) (*sound.Buffer, error) {
	out := make([][]float64, buf.Channels())
	for c := range out {
		y, err := fn(c, buf.Channel(c))
		if err != nil {
			return nil, err
		}
		out[c] = y
	}
	return sound.FromChannels(out, buf.SampleRate())
}
