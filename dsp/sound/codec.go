package sound

// Source produces interleaved samples, typically by decoding a file.
type Source interface {
	Read() (samples []float64, channels, sampleRate int, err error)
}

// Sink consumes interleaved samples, typically by encoding a file.
type Sink interface {
	Write(samples []float64, channels, sampleRate int) error
}

// ReadFrom builds a buffer from src. Errors from src are returned
// unchanged; the channel count comes from the decoded data.
func ReadFrom(src Source) (*Buffer, error) {
	samples, channels, sampleRate, err := src.Read()
	if err != nil {
		return nil, err
	}
	return FromInterleaved(samples, channels, sampleRate)
}

// Save hands the buffer to dst. Errors from dst are returned unchanged.
func (b *Buffer) Save(dst Sink) error {
	return dst.Write(b.samples, b.channels, b.sampleRate)
}
