package deck

import (
	"encoding/json"
	"fmt"

	"sieteymedio/internal/rng"
)

// CardSet is an insertion-ordered collection of unique cards
// The order only matters for Shuffle() and TakeOldest(), which always returns the earliest inserted card.
type CardSet struct {
	cards []*Card
	index map[string]*Card
}

// NewCardSet returns an empty card set
func NewCardSet() *CardSet {
	return &CardSet{
		cards: make([]*Card, 0),
		index: make(map[string]*Card),
	}
}

// Len returns the number of cards in the set
func (c *CardSet) Len() int {
	return len(c.cards)
}

// Contains returns true if a card with the same identity is in the set
func (c *CardSet) Contains(card *Card) bool {
	_, ok := c.index[card.ID()]
	return ok
}

// Get returns the card with the specified ID
func (c *CardSet) Get(id string) (*Card, bool) {
	card, ok := c.index[id]
	return card, ok
}

// Add inserts the card at the end of the set
func (c *CardSet) Add(card *Card) error {
	id := card.ID()
	if _, ok := c.index[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, id)
	}

	c.cards = append(c.cards, card)
	c.index[id] = card
	return nil
}

// Remove removes the card from the set
func (c *CardSet) Remove(card *Card) error {
	id := card.ID()
	if _, ok := c.index[id]; !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}

	cards := make([]*Card, 0, len(c.cards)-1)
	for _, member := range c.cards {
		if !member.Equal(card) {
			cards = append(cards, member)
		}
	}

	c.cards = cards
	delete(c.index, id)
	return nil
}

// Oldest returns the earliest inserted card without removing it
func (c *CardSet) Oldest() (*Card, error) {
	if len(c.cards) == 0 {
		return nil, ErrEmptyContainer
	}

	return c.cards[0], nil
}

// TakeOldest removes and returns the earliest inserted card
func (c *CardSet) TakeOldest() (*Card, error) {
	card, err := c.Oldest()
	if err != nil {
		return nil, err
	}

	c.cards = c.cards[1:]
	delete(c.index, card.ID())
	return card, nil
}

// Points returns the sum of the points of every card in the set
func (c *CardSet) Points() float64 {
	points := 0.0
	for _, card := range c.cards {
		points += card.points
	}

	return points
}

// VisiblePoints returns the sum of the points of the face up cards
func (c *CardSet) VisiblePoints() float64 {
	points := 0.0
	for _, card := range c.cards {
		if !card.hidden {
			points += card.points
		}
	}

	return points
}

// HiddenCount returns the number of face down cards
func (c *CardSet) HiddenCount() int {
	count := 0
	for _, card := range c.cards {
		if card.hidden {
			count++
		}
	}

	return count
}

// Shuffle replaces the order of the set with a random permutation
func (c *CardSet) Shuffle(gen rng.Generator) {
	Shuffle(c.cards, gen)
}

// SetAllHidden turns every card face down (true) or face up (false)
func (c *CardSet) SetAllHidden(hidden bool) {
	for _, card := range c.cards {
		card.hidden = hidden
	}
}

// RevealFirstHidden turns the earliest inserted face down card face up
// Returns false if there are no face down cards.
func (c *CardSet) RevealFirstHidden() (*Card, bool) {
	for _, card := range c.cards {
		if card.hidden {
			card.hidden = false
			return card, true
		}
	}

	return nil, false
}

// Cards returns a shallow clone of the cards in insertion order
func (c *CardSet) Cards() []*Card {
	return append([]*Card{}, c.cards...)
}

// IDs returns the card identities in insertion order
func (c *CardSet) IDs() []string {
	ids := make([]string, len(c.cards))
	for i, card := range c.cards {
		ids[i] = card.ID()
	}

	return ids
}

// Clear removes every card from the set
func (c *CardSet) Clear() {
	c.cards = make([]*Card, 0)
	c.index = make(map[string]*Card)
}

func (c *CardSet) String() string {
	return CardsToString(c.cards)
}

// MarshalJSON provides custom JSON marshalling for the set
func (c *CardSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.cards)
}
