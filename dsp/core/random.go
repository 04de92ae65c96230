package core

import "math/rand"

// RandomSeed draws a seed from the process-wide generator, so two calls
// almost never agree.
func RandomSeed() int64 {
	return rand.Int63()
}

// NewRand returns a private source with a fresh seed. Generators fall
// back to it when no source is injected, so unseeded calls redraw.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(RandomSeed()))
}
