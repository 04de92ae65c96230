package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SecondsToFrames converts a duration to the nearest whole frame count.
// Negative and non-finite durations map to 0.
func SecondsToFrames(seconds float64, sampleRate int) int {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) || sampleRate <= 0 {
		return 0
	}

	return int(math.Round(seconds * float64(sampleRate)))
}
