// Package rng provides the random sources used to shuffle decks
package rng

import (
	"math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// NewSeeded returns a reproducible generator
// This should be used by tests and replays. Real games should use Crypto.
func NewSeeded(seed int64) Generator {
	return rand.New(rand.NewSource(seed)) // nolint:gosec
}

// FromSeed returns Crypto when seed is 0, otherwise a generator seeded with seed
func FromSeed(seed int64) Generator {
	if seed == 0 {
		return Crypto{}
	}

	return NewSeeded(seed)
}
