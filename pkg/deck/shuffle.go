package deck

import "sieteymedio/internal/rng"

// Shuffle performs an in-place Fisher-Yates shuffle of the cards
// At each step i (from the last index down to 1) a uniform index in [0, i] is drawn and swapped with i.
func Shuffle(cards []*Card, gen rng.Generator) {
	for i := len(cards) - 1; i > 0; i-- {
		j := gen.Intn(i + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}
}
