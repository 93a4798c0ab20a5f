package sieteymedio

import (
	"fmt"

	"sieteymedio/pkg/deck"
)

// Redistribute deals count cards from the oldest end of from to each destination in to, one destination at a time
// Every dealt card is turned face down if hidden is true, face up otherwise.
// If from runs out, an *InsufficientStockError is returned. Cards already dealt stay where they are and the
// remaining destinations are skipped.
func Redistribute(count int, from *deck.CardSet, to []*deck.CardSet, hidden bool) error {
	for _, dest := range to {
		for dealt := 0; dealt < count; dealt++ {
			if from.Len() == 0 {
				return &InsufficientStockError{Missing: count - dealt}
			}

			if _, err := moveOldest(from, dest, hidden); err != nil {
				return err
			}
		}
	}

	return nil
}

// moveOldest moves the oldest card of from to the end of to
// The card is only removed from from after to accepted it, so a failure leaves both sets untouched.
func moveOldest(from, to *deck.CardSet, hidden bool) (*deck.Card, error) {
	card, err := from.Oldest()
	if err != nil {
		return nil, err
	}

	if err := to.Add(card); err != nil {
		return nil, err
	}

	if err := from.Remove(card); err != nil {
		if rollbackErr := to.Remove(card); rollbackErr != nil {
			return nil, fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
		}

		return nil, err
	}

	card.SetHidden(hidden)
	return card, nil
}
