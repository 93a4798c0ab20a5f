package sieteymedio

import (
	"context"

	"sieteymedio/pkg/playable"
)

// Decider makes the decisions for the players
// Decide blocks until a choice is made. Returning a choice outside of state.Choices makes the game ask again;
// returning an error stops the game.
type Decider interface {
	Decide(ctx context.Context, state TurnState) (Choice, error)
}

// DeciderFunc is an adapter to allow the use of ordinary functions as a Decider
type DeciderFunc func(ctx context.Context, state TurnState) (Choice, error)

// Decide calls f(ctx, state)
func (f DeciderFunc) Decide(ctx context.Context, state TurnState) (Choice, error) {
	return f(ctx, state)
}

// Display renders the game. It only observes: nothing it does affects the game
type Display interface {
	// Render shows the table to everyone (public) and to the acting player (private)
	Render(public PublicView, private PrivateView)

	// Notify shows log messages, such as an invalid choice or the end of a round
	Notify(messages ...*playable.LogMessage)
}

// Recorder keeps the results of completed rounds
type Recorder interface {
	RecordRound(ctx context.Context, result *RoundResult) error
}

// Displays sends everything to each display in order
type Displays []Display

// Render renders on every display
func (d Displays) Render(public PublicView, private PrivateView) {
	for _, display := range d {
		display.Render(public, private)
	}
}

// Notify notifies every display
func (d Displays) Notify(messages ...*playable.LogMessage) {
	for _, display := range d {
		display.Notify(messages...)
	}
}

type nopDisplay struct{}

func (nopDisplay) Render(PublicView, PrivateView)   {}
func (nopDisplay) Notify(...*playable.LogMessage) {}
