// Package fx holds buffer-to-buffer effects: filters, bit crushing,
// normalization, playback speed and time stretching.
//
// Every effect returns a new buffer and leaves its input untouched.
// Stateful filters restart for each channel.
package fx
