package sound

import (
	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// DubFrames adds other into b starting at frame offset and returns the
// new length in frames. The receiver grows with silence when other runs
// past its end; this is the only implicit resize in the package. A
// negative offset is treated as 0. Channel layouts are matched as in
// [Buffer.Remix]; sample rates are not converted.
func (b *Buffer) DubFrames(other *Buffer, offset int) int {
	if other == nil || other.IsEmpty() {
		return b.Len()
	}
	offset = max(offset, 0)

	src := remap(other, b.channels, false)
	end := offset*b.channels + len(src)
	if end > len(b.samples) {
		grown := make([]float64, end)
		copy(grown, b.samples)
		b.samples = grown
	}
	vecmath.AddBlockInPlace(b.samples[offset*b.channels:end], src)

	return b.Len()
}

// Dub adds other into b at atSeconds, converted with the receiver's
// sample rate, and returns the new length in frames.
func (b *Buffer) Dub(other *Buffer, atSeconds float64) int {
	return b.DubFrames(other, core.SecondsToFrames(atSeconds, b.sampleRate))
}

// Dubbed is the non-mutating form of [Buffer.Dub].
func (b *Buffer) Dubbed(other *Buffer, atSeconds float64) *Buffer {
	out := b.Copy()
	out.Dub(other, atSeconds)
	return out
}

// Concat returns a new buffer holding b's frames followed by other's. If
// either operand is empty a copy of the other is returned.
func (b *Buffer) Concat(other *Buffer) *Buffer {
	switch {
	case other == nil || other.IsEmpty():
		return b.Copy()
	case b.IsEmpty():
		return other.Copy()
	}

	src := remap(other, b.channels, false)
	samples := make([]float64, 0, len(b.samples)+len(src))
	samples = append(samples, b.samples...)
	samples = append(samples, src...)

	return &Buffer{samples: samples, channels: b.channels, sampleRate: b.sampleRate}
}

// Repeat returns a new buffer holding n whole copies of b. Non-positive
// n yields an empty buffer; use [Buffer.Fill] for fractional tiling.
func (b *Buffer) Repeat(n int) *Buffer {
	if n <= 0 || b.IsEmpty() {
		return b.empty()
	}

	samples := make([]float64, 0, n*len(b.samples))
	for range n {
		samples = append(samples, b.samples...)
	}
	return &Buffer{samples: samples, channels: b.channels, sampleRate: b.sampleRate}
}

// MultiplySamples returns the sample-wise product of b and other. The
// result is as long as the shorter operand and uses b's format.
func (b *Buffer) MultiplySamples(other *Buffer) *Buffer {
	if other == nil {
		return b.empty()
	}

	src := remap(other, b.channels, false)
	n := min(len(b.samples), len(src))
	out := &Buffer{samples: make([]float64, n), channels: b.channels, sampleRate: b.sampleRate}
	if n > 0 {
		vecmath.MulBlock(out.samples, b.samples[:n], src[:n])
	}
	return out
}

// Mix sums buffers at offset 0. The result takes the format of the first
// non-nil buffer and is as long as the longest input. With no input an
// empty default-format buffer is returned.
func Mix(buffers ...*Buffer) *Buffer {
	var out *Buffer
	for _, buf := range buffers {
		if buf == nil {
			continue
		}
		if out == nil {
			out = buf.Copy()
			continue
		}
		out.DubFrames(buf, 0)
	}
	if out == nil {
		return New(0)
	}
	return out
}
