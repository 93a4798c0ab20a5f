package sieteymedio

import (
	"sieteymedio/pkg/deck"
)

// Status is where a player is in the round
type Status string

// Status constants
const (
	// StatusIdle is a player waiting for their turn
	StatusIdle Status = "idle"

	// StatusInTurn is the player currently making decisions
	StatusInTurn Status = "in-turn"

	// StatusDone is a player that stood, reached 7.5 or busted
	StatusDone Status = "done"

	// StatusDealer is the dealer before their turn, which is always the last one
	StatusDealer Status = "dealer"
)

// Player is an individual in the game
type Player struct {
	Nickname string

	// hand is reserved for cards that are never shown. This game does not use it
	hand   *deck.CardSet
	table  *deck.CardSet
	status Status
	score  float64
}

// NewPlayer returns a new player
func NewPlayer(nickname string) *Player {
	return &Player{
		Nickname: nickname,
		hand:     deck.NewCardSet(),
		table:    deck.NewCardSet(),
		status:   StatusIdle,
	}
}

// Hand returns the player's hand
func (p *Player) Hand() *deck.CardSet {
	return p.hand
}

// Table returns the cards the player has in play
func (p *Player) Table() *deck.CardSet {
	return p.table
}

// Status returns the player's status
func (p *Player) Status() Status {
	return p.status
}

// Score returns the points the player accumulated from the rounds they won
func (p *Player) Score() float64 {
	return p.score
}

// IsBusted returns true if the player's table went over the target
func (p *Player) IsBusted() bool {
	return p.table.Points() > Target
}

// reset prepares the player for a new round
func (p *Player) reset() {
	p.hand.Clear()
	p.table.Clear()
	p.status = StatusIdle
}
