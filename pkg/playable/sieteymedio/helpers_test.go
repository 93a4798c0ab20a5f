package sieteymedio

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"sieteymedio/pkg/deck"
	"sieteymedio/pkg/playable"
)

// keepOrder makes Shuffle() leave the cards where they are
type keepOrder struct{}

func (keepOrder) Intn(n int) int {
	return n - 1
}

// scriptedDecider plays the scripted choices of each player, then stands
type scriptedDecider struct {
	scripts map[string][]Choice
	calls   map[string]int
	states  []TurnState
}

func newScriptedDecider(scripts map[string][]Choice) *scriptedDecider {
	if scripts == nil {
		scripts = make(map[string][]Choice)
	}

	return &scriptedDecider{
		scripts: scripts,
		calls:   make(map[string]int),
	}
}

func (s *scriptedDecider) Decide(_ context.Context, state TurnState) (Choice, error) {
	nickname := state.Private.Nickname
	s.calls[nickname]++
	s.states = append(s.states, state)

	script := s.scripts[nickname]
	if len(script) == 0 {
		return ChoiceStand, nil
	}

	s.scripts[nickname] = script[1:]
	return script[0], nil
}

func (s *scriptedDecider) statesOf(nickname string) []TurnState {
	states := make([]TurnState, 0)
	for _, state := range s.states {
		if state.Private.Nickname == nickname {
			states = append(states, state)
		}
	}

	return states
}

type recordingDisplay struct {
	publics  []PublicView
	privates []PrivateView
	messages []*playable.LogMessage
}

func (r *recordingDisplay) Render(public PublicView, private PrivateView) {
	r.publics = append(r.publics, public)
	r.privates = append(r.privates, private)
}

func (r *recordingDisplay) Notify(messages ...*playable.LogMessage) {
	r.messages = append(r.messages, messages...)
}

func (r *recordingDisplay) hasMessage(text string) bool {
	for _, msg := range r.messages {
		if msg.String() == text {
			return true
		}
	}

	return false
}

type memoryRecorder struct {
	results []*RoundResult
	err     error
}

func (m *memoryRecorder) RecordRound(_ context.Context, result *RoundResult) error {
	m.results = append(m.results, result)
	return m.err
}

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// setupGame returns a game with an unshuffled Spanish deck
// With ana, luis and eva the turn order is eva, luis, ana (dealer).
func setupGame(t *testing.T, decider Decider, nicknames ...string) (*Game, *recordingDisplay) {
	t.Helper()

	if len(nicknames) == 0 {
		nicknames = []string{"ana", "luis", "eva"}
	}

	opts := DefaultOptions()
	opts.RNG = keepOrder{}

	display := &recordingDisplay{}
	g, err := NewGame(testLogger(), nicknames, decider, display, opts)
	require.NoError(t, err)

	return g, display
}

// stackStock moves the cards to the front of the stock in the order given
func stackStock(t *testing.T, g *Game, ids ...string) {
	t.Helper()

	stacked := deck.NewCardSet()
	for _, id := range ids {
		card, ok := g.stock.Get(id)
		require.True(t, ok, "card %s not in stock", id)
		require.NoError(t, g.stock.Remove(card))
		require.NoError(t, stacked.Add(card))
	}

	for g.stock.Len() > 0 {
		card, err := g.stock.TakeOldest()
		require.NoError(t, err)
		require.NoError(t, stacked.Add(card))
	}

	g.stock = stacked
}

func playerByName(g *Game, nickname string) *Player {
	for _, p := range g.players {
		if p.Nickname == nickname {
			return p
		}
	}

	return nil
}

func nicknames(players []*Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Nickname
	}

	return names
}
