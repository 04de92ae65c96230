package sound

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Buffer is an interleaved multichannel sample buffer.
type Buffer struct {
	samples    []float64
	channels   int
	sampleRate int
}

// Envelope is sampled once per frame at the frame's normalized position.
// *curve.Curve satisfies it.
type Envelope interface {
	Interp(phase float64) float64
}

// New returns a zero-filled buffer of the given length in frames. The
// format defaults to 44.1 kHz stereo. Negative lengths yield an empty
// buffer.
func New(frames int, opts ...core.ProcessorOption) *Buffer {
	cfg := core.ApplyProcessorOptions(opts...)
	if frames < 0 {
		frames = 0
	}

	return &Buffer{
		samples:    make([]float64, frames*cfg.Channels),
		channels:   cfg.Channels,
		sampleRate: cfg.SampleRate,
	}
}

// NewSeconds returns a zero-filled buffer lasting the given number of
// seconds, rounded to the nearest frame.
func NewSeconds(seconds float64, opts ...core.ProcessorOption) (*Buffer, error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("sound: length must be a finite, non-negative number of seconds, got %g: %w", seconds, core.ErrRange)
	}

	cfg := core.ApplyProcessorOptions(opts...)

	return New(core.SecondsToFrames(seconds, cfg.SampleRate), opts...), nil
}

// FromInterleaved copies interleaved samples into a new buffer.
func FromInterleaved(samples []float64, channels, sampleRate int) (*Buffer, error) {
	if err := core.ValidateFormat(sampleRate, channels); err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("sound: %d samples do not divide into %d channels: %w",
			len(samples), channels, core.ErrConfiguration)
	}

	return &Buffer{
		samples:    append(make([]float64, 0, len(samples)), samples...),
		channels:   channels,
		sampleRate: sampleRate,
	}, nil
}

// FromFrames copies a frame sequence into a new buffer. Every frame must
// hold exactly channels samples.
func FromFrames(frames [][]float64, channels, sampleRate int) (*Buffer, error) {
	if err := core.ValidateFormat(sampleRate, channels); err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}

	samples := make([]float64, 0, len(frames)*channels)
	for i, frame := range frames {
		if len(frame) != channels {
			return nil, fmt.Errorf("sound: frame %d has %d samples, want %d: %w",
				i, len(frame), channels, core.ErrConfiguration)
		}
		samples = append(samples, frame...)
	}

	return &Buffer{samples: samples, channels: channels, sampleRate: sampleRate}, nil
}

// FromChannels builds a buffer from planar channel data. Shorter
// channels are padded with silence to the longest one.
func FromChannels(channels [][]float64, sampleRate int) (*Buffer, error) {
	if err := core.ValidateFormat(sampleRate, len(channels)); err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}

	n := 0
	for _, ch := range channels {
		n = max(n, len(ch))
	}
	nch := len(channels)
	samples := make([]float64, n*nch)
	for c, ch := range channels {
		for i, v := range ch {
			samples[i*nch+c] = v
		}
	}
	return &Buffer{samples: samples, channels: nch, sampleRate: sampleRate}, nil
}

// Len returns the length in frames.
func (b *Buffer) Len() int { return len(b.samples) / b.channels }

// Channels returns the channel count.
func (b *Buffer) Channels() int { return b.channels }

// SampleRate returns the sample rate in frames per second.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Duration returns the length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Len()) / float64(b.sampleRate)
}

// IsEmpty reports whether the buffer holds no frames.
func (b *Buffer) IsEmpty() bool { return len(b.samples) == 0 }

// Samples returns the interleaved backing slice. Writes through it are
// visible in the buffer.
func (b *Buffer) Samples() []float64 { return b.samples }

// Frame returns a copy of frame i. It panics when i is out of range.
func (b *Buffer) Frame(i int) []float64 {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("sound: frame %d out of range [0,%d)", i, b.Len()))
	}
	return append([]float64(nil), b.samples[i*b.channels:(i+1)*b.channels]...)
}

// Channel returns a copy of one channel. It panics when c is out of range.
func (b *Buffer) Channel(c int) []float64 {
	b.checkChannel(c)

	out := make([]float64, b.Len())
	for i := range out {
		out[i] = b.samples[i*b.channels+c]
	}
	return out
}

// SetChannel overwrites channel c with data. Only the overlapping prefix
// is written.
func (b *Buffer) SetChannel(c int, data []float64) *Buffer {
	b.checkChannel(c)

	n := min(len(data), b.Len())
	for i := range n {
		b.samples[i*b.channels+c] = data[i]
	}
	return b
}

// Copy returns an independent copy.
func (b *Buffer) Copy() *Buffer {
	return &Buffer{
		samples:    append([]float64(nil), b.samples...),
		channels:   b.channels,
		sampleRate: b.sampleRate,
	}
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(frames=%d channels=%d rate=%d)", b.Len(), b.channels, b.sampleRate)
}

// Clear zeroes every sample.
func (b *Buffer) Clear() *Buffer {
	clear(b.samples)
	return b
}

// Fill sets the length to exactly frames. Shorter targets truncate;
// longer targets tile whole copies of the content and append a partial
// final tile. A non-positive target or an empty buffer leaves the buffer
// empty.
func (b *Buffer) Fill(frames int) *Buffer {
	n := b.Len()
	switch {
	case frames <= 0 || n == 0:
		b.samples = b.samples[:0]
	case frames <= n:
		b.samples = b.samples[:frames*b.channels]
	default:
		out := make([]float64, frames*b.channels)
		for pos := 0; pos < len(out); pos += len(b.samples) {
			copy(out[pos:], b.samples)
		}
		b.samples = out
	}
	return b
}

// Slice returns a copy of frames [start, end), clamped to the buffer
// bounds. A start past the end yields an empty buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	n := b.Len()
	start = max(start, 0)
	end = min(end, n)
	if start >= end {
		return b.empty()
	}

	return &Buffer{
		samples:    append([]float64(nil), b.samples[start*b.channels:end*b.channels]...),
		channels:   b.channels,
		sampleRate: b.sampleRate,
	}
}

// ApplyEnvelope multiplies frame i by env.Interp(i/Len()) in place. A nil
// envelope, including a nil *curve.Curve, leaves the buffer unchanged.
func (b *Buffer) ApplyEnvelope(env Envelope) *Buffer {
	n := b.Len()
	if n == 0 || isNilEnvelope(env) {
		return b
	}

	gains := make([]float64, len(b.samples))
	for i := range n {
		g := env.Interp(float64(i) / float64(n))
		row := gains[i*b.channels : (i+1)*b.channels]
		for c := range row {
			row[c] = g
		}
	}
	vecmath.MulBlockInPlace(b.samples, gains)

	return b
}

func isNilEnvelope(env Envelope) bool {
	if env == nil {
		return true
	}
	v := reflect.ValueOf(env)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Scale multiplies every sample by factor in place.
func (b *Buffer) Scale(factor float64) *Buffer {
	if len(b.samples) > 0 {
		vecmath.ScaleBlock(b.samples, b.samples, factor)
	}
	return b
}

// ScaleChannels multiplies each channel by its own gain in place. The
// gain list cycles when it is shorter than the channel count; an empty
// list is a no-op.
func (b *Buffer) ScaleChannels(gains ...float64) *Buffer {
	if len(gains) == 0 {
		return b
	}
	for i := range b.samples {
		b.samples[i] *= gains[(i%b.channels)%len(gains)]
	}
	return b
}

// Taper fades the first and last frames in and out linearly. The fade
// length is clamped to half the buffer.
func (b *Buffer) Taper(frames int) *Buffer {
	n := b.Len()
	frames = min(frames, n/2)
	if frames <= 0 {
		return b
	}

	for i := range frames {
		g := float64(i) / float64(frames)
		head := b.samples[i*b.channels : (i+1)*b.channels]
		tail := b.samples[(n-1-i)*b.channels : (n-i)*b.channels]
		for c := range head {
			head[c] *= g
			tail[c] *= g
		}
	}
	return b
}

// Reverse reverses the frame order in place.
func (b *Buffer) Reverse() *Buffer {
	ch := b.channels
	for i, j := 0, b.Len()-1; i < j; i, j = i+1, j-1 {
		for c := range ch {
			b.samples[i*ch+c], b.samples[j*ch+c] = b.samples[j*ch+c], b.samples[i*ch+c]
		}
	}
	return b
}

// Remix returns a copy with a different channel count. Extra output
// channels repeat the source channels cyclically; surplus source
// channels are summed into the output channel they wrap onto.
func (b *Buffer) Remix(channels int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("sound: channel count must be >= 1, got %d: %w", channels, core.ErrConfiguration)
	}
	return &Buffer{
		samples:    remap(b, channels, true),
		channels:   channels,
		sampleRate: b.sampleRate,
	}, nil
}

func (b *Buffer) empty() *Buffer {
	return &Buffer{samples: []float64{}, channels: b.channels, sampleRate: b.sampleRate}
}

func (b *Buffer) checkChannel(c int) {
	if c < 0 || c >= b.channels {
		panic(fmt.Sprintf("sound: channel %d out of range [0,%d)", c, b.channels))
	}
}

// remap returns src's samples laid out for the given channel count. When
// the layout already matches, the source storage is returned unless
// fresh is set.
func remap(src *Buffer, channels int, fresh bool) []float64 {
	if src.channels == channels {
		if fresh {
			return append([]float64(nil), src.samples...)
		}
		return src.samples
	}

	n := src.Len()
	out := make([]float64, n*channels)
	if src.channels < channels {
		for i := range n {
			for c := range channels {
				out[i*channels+c] = src.samples[i*src.channels+c%src.channels]
			}
		}
		return out
	}

	for i := range n {
		for c := range src.channels {
			out[i*channels+c%channels] += src.samples[i*src.channels+c]
		}
	}
	return out
}
