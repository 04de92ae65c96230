// Package wavfile reads and writes sample buffers as PCM WAV files.
package wavfile

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/dither"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

// DefaultBitDepth is used when File.BitDepth is zero.
const DefaultBitDepth = 16

// File is a WAV file on disk. It implements sound.Source and sound.Sink.
type File struct {
	Path string
	// BitDepth selects 8, 16, 24 or 32 bit integer PCM on write.
	BitDepth int
	// Dither is the noise added before quantization on write. The zero
	// value writes plain rounded samples.
	Dither dither.Type
}

var (
	_ sound.Source = File{}
	_ sound.Sink   = File{}
)

// Read decodes the whole file into interleaved samples in [-1, 1].
func (f File) Read() ([]float64, int, int, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wavfile: open %s: %w: %w", f.Path, core.ErrIO, err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("wavfile: read header of %s: %w: %w", f.Path, core.ErrIO, err)
	}
	if dec.NumChans < 1 || dec.BitDepth < 8 {
		return nil, 0, 0, fmt.Errorf("wavfile: %s is not a PCM WAV file: %w", f.Path, core.ErrIO)
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wavfile: decode %s: %w: %w", f.Path, core.ErrIO, err)
	}

	depth := pcm.SourceBitDepth
	samples := make([]float64, len(pcm.Data))
	if depth == 8 {
		for i, v := range pcm.Data {
			samples[i] = float64(v-128) / 128
		}
	} else {
		scale := math.Exp2(float64(depth - 1))
		for i, v := range pcm.Data {
			samples[i] = float64(v) / scale
		}
	}

	return samples, pcm.Format.NumChannels, pcm.Format.SampleRate, nil
}

// Write encodes interleaved samples, clipping them to [-1, 1].
func (f File) Write(samples []float64, channels, sampleRate int) (err error) {
	depth := f.BitDepth
	if depth == 0 {
		depth = DefaultBitDepth
	}
	switch depth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("wavfile: unsupported bit depth %d: %w", depth, core.ErrConfiguration)
	}
	if err := core.ValidateFormat(sampleRate, channels); err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}

	q, err := dither.NewQuantizer(depth, dither.WithType(f.Dither))
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}

	w, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("wavfile: create %s: %w: %w", f.Path, core.ErrIO, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavfile: close %s: %w: %w", f.Path, core.ErrIO, cerr)
		}
	}()

	data := q.Process(nil, samples)
	if depth == 8 {
		for i := range data {
			data[i] += 128
		}
	}

	enc := wav.NewEncoder(w, sampleRate, depth, channels, 1)
	pcm := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		SourceBitDepth: depth,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("wavfile: encode %s: %w: %w", f.Path, core.ErrIO, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavfile: finish %s: %w: %w", f.Path, core.ErrIO, err)
	}
	return nil
}

// Load reads a WAV file into a buffer.
func Load(path string) (*sound.Buffer, error) {
	return sound.ReadFrom(File{Path: path})
}

// Save writes buf to path as 16-bit PCM.
func Save(path string, buf *sound.Buffer) error {
	return buf.Save(File{Path: path})
}
