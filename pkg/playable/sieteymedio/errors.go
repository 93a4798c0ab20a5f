package sieteymedio

import (
	"errors"
	"fmt"
)

// ErrInvalidChoice is an error when a player picks a choice that is not available to them
// The turn loop recovers from it by asking again.
var ErrInvalidChoice = errors.New("choice not available")

// ErrEmptyNickname is an error when a player has no nickname
var ErrEmptyNickname = errors.New("nickname cannot be empty")

// ErrDuplicateNickname is an error when two players share a nickname
var ErrDuplicateNickname = errors.New("duplicate nickname")

// ErrNoDecider is an error when a game is created without anyone to make decisions
var ErrNoDecider = errors.New("a decider is required")

// ErrRoundInProgress is an error when a round is started before the previous one is resolved
var ErrRoundInProgress = errors.New("the round is in progress")

// ErrRoundNotStarted is an error when a round is played before the cards are dealt
var ErrRoundNotStarted = errors.New("the round has not started")

// ErrPartitionViolated is an error when the cards in play no longer add up to the deck
var ErrPartitionViolated = errors.New("cards in play do not match the deck")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected between %d and %d players, got %d", minPlayers, maxPlayers, int(p))
}

// InsufficientStockError is returned when the stock runs out while dealing
// It is a game condition rather than a bug: the caller decides whether to stop or replenish the stock.
type InsufficientStockError struct {
	// Missing is how many cards could not be dealt to the destination that ran dry
	Missing int
}

func (i *InsufficientStockError) Error() string {
	return fmt.Sprintf("the stock is empty but %d cards remain to be redistributed", i.Missing)
}
