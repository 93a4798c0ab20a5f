package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants for the Spanish deck
const (
	Oros    Suit = "oros"
	Copas   Suit = "copas"
	Espadas Suit = "espadas"
	Bastos  Suit = "bastos"
)

// Value is the rank printed on a card. It is either numeric ("1", "7") or symbolic ("sota")
type Value string

// face cards
const (
	Sota    Value = "sota"
	Caballo Value = "caballo"
	Rey     Value = "rey"
)

// Card is an individual playing card
// The value and suit are fixed when the deck is built and cannot be changed afterwards.
type Card struct {
	value  Value
	suit   Suit
	points float64
	hidden bool
}

func newCard(value Value, suit Suit, points float64) *Card {
	return &Card{
		value:  value,
		suit:   suit,
		points: points,
		hidden: true,
	}
}

// ID returns the identity of the card in the format of <value>_<suit>
func (c *Card) ID() string {
	return cardID(c.value, c.suit)
}

func cardID(value Value, suit Suit) string {
	return fmt.Sprintf("%s_%s", value, suit)
}

// Value returns the card's value
func (c *Card) Value() Value {
	return c.value
}

// Suit returns the card's suit
func (c *Card) Suit() Suit {
	return c.suit
}

// Points returns the points assigned by the deck definition
func (c *Card) Points() float64 {
	return c.points
}

// Hidden returns true if the card is face down
func (c *Card) Hidden() bool {
	return c.hidden
}

// SetHidden turns the card face down (true) or face up (false)
func (c *Card) SetHidden(hidden bool) {
	c.hidden = hidden
}

// Equal returns true if the cards share the same identity
func (c *Card) Equal(card *Card) bool {
	return c.value == card.value && c.suit == card.suit
}

func (c *Card) String() string {
	return fmt.Sprintf("%s (%g)", c.ID(), c.points)
}

type cardJSON struct {
	Value  Value   `json:"value"`
	Suit   Suit    `json:"suit"`
	Points float64 `json:"points"`
	Hidden bool    `json:"hidden"`
}

// MarshalJSON provides custom JSON marshalling for the card
func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		Value:  c.value,
		Suit:   c.suit,
		Points: c.points,
		Hidden: c.hidden,
	})
}

// UnmarshalJSON restores a card. A card that already has an identity only accepts a payload
// with the same value and suit.
func (c *Card) UnmarshalJSON(b []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return err
	}

	if c.value != "" || c.suit != "" {
		if !c.Equal(&Card{value: cj.Value, suit: cj.Suit}) {
			return fmt.Errorf("%w: %s cannot become %s", ErrImmutableIdentity, c.ID(), cardID(cj.Value, cj.Suit))
		}
	}

	c.value = cj.Value
	c.suit = cj.Suit
	c.points = cj.Points
	c.hidden = cj.Hidden
	return nil
}

// CardsToString will convert a slice of cards to a string in the format of 1_oros,sota_copas,...
func CardsToString(cards []*Card) string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID()
	}

	return strings.Join(ids, ",")
}
