package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports structurally invalid construction
	// parameters: unknown shape kinds, non-positive channel counts or
	// sample rates, non-positive band counts.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrRange reports a numeric range that cannot be coerced, such as a
	// negative duration or an inverted range for a stochastic shape.
	ErrRange = errors.New("invalid range")

	// ErrIO marks failures surfaced by codec collaborators.
	ErrIO = errors.New("i/o failure")
)

// ValidateFormat checks a sample rate and channel count pair.
func ValidateFormat(sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0, got %d: %w", sampleRate, ErrConfiguration)
	}
	if channels < 1 {
		return fmt.Errorf("channel count must be >= 1, got %d: %w", channels, ErrConfiguration)
	}
	return nil
}
