package sieteymedio

import (
	"sieteymedio/internal/rng"
	"sieteymedio/pkg/deck"
)

const (
	minPlayers = 2
	maxPlayers = 8
)

// Target is the point total every player is after. Anything above it is a bust.
const Target = 7.5

// Options are options for creating a new game of siete y media
type Options struct {
	// Definition is the deck the stock is rebuilt from every round
	Definition deck.Definition

	// RNG shuffles the stock. Defaults to rng.Crypto
	RNG rng.Generator

	// MaxRounds stops Run() after that many rounds. Zero means no limit
	MaxRounds int
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Definition: deck.Spanish40(),
		RNG:        rng.Crypto{},
		MaxRounds:  0,
	}
}
