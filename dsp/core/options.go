package core

const (
	// DefaultSampleRate is the sample rate used when none is configured.
	DefaultSampleRate = 44100
	// DefaultChannels is the channel count used when none is configured.
	DefaultChannels = 2
	// DefaultSeed seeds sources that must be reproducible without
	// configuration, such as output dither.
	DefaultSeed int64 = 1
)

// MS is one millisecond expressed in seconds.
const MS = 0.001

// ProcessorConfig defines the audio format shared by buffer constructors
// and generators.
type ProcessorConfig struct {
	SampleRate int
	Channels   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 44.1 kHz stereo.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
	}
}

// WithSampleRate sets the sample rate in frames per second.
func WithSampleRate(sampleRate int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
