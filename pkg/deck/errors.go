package deck

import "errors"

// ErrDuplicateCard is an error when a card is added to a set that already holds it
var ErrDuplicateCard = errors.New("card is already in the set")

// ErrCardNotFound is an error when a card is removed from a set that does not hold it
var ErrCardNotFound = errors.New("card is not in the set")

// ErrEmptyContainer is an error when a card is taken from an empty set
var ErrEmptyContainer = errors.New("the set is empty")

// ErrImmutableIdentity is an error when something tries to change the value or suit of a card
var ErrImmutableIdentity = errors.New("card identity cannot be modified")

// ErrDegenerateDefinition is an error when a deck definition cannot produce any cards
var ErrDegenerateDefinition = errors.New("deck definition needs values, suits and a points rule")

// ErrUnknownDefinition is an error when a deck definition name is not registered
var ErrUnknownDefinition = errors.New("unknown deck definition")
