package deck

import (
	"fmt"
	"sort"
	"strconv"
)

// Definition declares how a deck is built: every value in every suit, with points assigned by Points
type Definition struct {
	Name   string
	Values []Value
	Suits  []Suit
	Points func(value Value) float64
}

// Size returns how many cards the definition produces
func (d Definition) Size() int {
	return len(d.Values) * len(d.Suits)
}

var spanishSuits = []Suit{Oros, Copas, Espadas, Bastos}

// spanishPoints scores numeric values at face value and figures at half a point
func spanishPoints(value Value) float64 {
	n, err := strconv.Atoi(string(value))
	if err != nil {
		return 0.5
	}

	return float64(n)
}

// Spanish40 returns the 40 card Spanish deck (1-7, sota, caballo, rey)
func Spanish40() Definition {
	return Definition{
		Name:   "spanish40",
		Values: []Value{"1", "2", "3", "4", "5", "6", "7", Sota, Caballo, Rey},
		Suits:  append([]Suit{}, spanishSuits...),
		Points: spanishPoints,
	}
}

// Spanish48 returns the 48 card Spanish deck, which adds the 8 and 9
func Spanish48() Definition {
	return Definition{
		Name:   "spanish48",
		Values: []Value{"1", "2", "3", "4", "5", "6", "7", "8", "9", Sota, Caballo, Rey},
		Suits:  append([]Suit{}, spanishSuits...),
		Points: spanishPoints,
	}
}

var definitions = map[string]func() Definition{
	"spanish40": Spanish40,
	"spanish48": Spanish48,
}

// LookupDefinition returns the registered definition with the specified name
func LookupDefinition(name string) (Definition, error) {
	fn, ok := definitions[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownDefinition, name)
	}

	return fn(), nil
}

// DefinitionNames returns the registered definition names in alphabetical order
func DefinitionNames() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Build returns a new, unshuffled set of cards for the definition
// Cards are created suit by suit (every value of the first suit, then the second suit, ...), all face down.
func Build(def Definition) (*CardSet, error) {
	if len(def.Values) == 0 || len(def.Suits) == 0 || def.Points == nil {
		return nil, ErrDegenerateDefinition
	}

	set := NewCardSet()
	for _, suit := range def.Suits {
		for _, value := range def.Values {
			if err := set.Add(newCard(value, suit, def.Points(value))); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}
