package sieteymedio

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sieteymedio/pkg/deck"
)

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(nil)

	g, err := NewGame(testLogger(), []string{"ana"}, decider, nil, DefaultOptions())
	a.Nil(g)
	a.EqualError(err, "expected between 2 and 8 players, got 1")

	g, err = NewGame(testLogger(), []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, decider, nil, DefaultOptions())
	a.Nil(g)
	a.Equal(PlayerCountError(9), err)

	g, err = NewGame(testLogger(), []string{"ana", " "}, decider, nil, DefaultOptions())
	a.Nil(g)
	a.Equal(ErrEmptyNickname, err)

	g, err = NewGame(testLogger(), []string{"ana", "luis", "ana"}, decider, nil, DefaultOptions())
	a.Nil(g)
	a.True(errors.Is(err, ErrDuplicateNickname))
	a.EqualError(err, "duplicate nickname: ana")

	g, err = NewGame(testLogger(), []string{"ana", "luis"}, nil, nil, DefaultOptions())
	a.Nil(g)
	a.Equal(ErrNoDecider, err)

	opts := DefaultOptions()
	opts.Definition = deck.Definition{Name: "broken", Values: []deck.Value{"1"}}
	g, err = NewGame(testLogger(), []string{"ana", "luis"}, decider, nil, opts)
	a.Nil(g)
	a.Equal(deck.ErrDegenerateDefinition, err)

	// zero value options fall back to the 40 card deck
	g, err = NewGame(nil, []string{"ana", "luis"}, decider, nil, Options{})
	a.NoError(err)
	a.Equal("spanish40", g.options.Definition.Name)
	a.Equal(40, g.Stock().Len())
	a.Equal(0, g.Round())
	a.False(g.InRound())
	a.Nil(g.Dealer())
	a.Equal("Siete y Media", g.Name())
}

func TestGame_Start(t *testing.T) {
	a := assert.New(t)

	g, display := setupGame(t, newScriptedDecider(nil))
	a.NoError(g.Start())

	a.Equal([]string{"eva", "luis", "ana"}, nicknames(g.Players()))
	a.Equal("ana", g.Dealer().Nickname)
	a.Equal(1, g.Round())
	a.True(g.InRound())
	a.Equal(37, g.Stock().Len())

	a.Equal(StatusInTurn, playerByName(g, "eva").Status())
	a.Equal(StatusIdle, playerByName(g, "luis").Status())
	a.Equal(StatusDealer, playerByName(g, "ana").Status())

	for _, p := range g.Players() {
		a.Equal(1, p.Table().Len())
		a.Equal(1, p.Table().HiddenCount())
		a.Equal(0, p.Hand().Len())
	}

	a.Equal("1_oros", playerByName(g, "eva").Table().String())
	a.Equal("3_oros", playerByName(g, "ana").Table().String())
	a.True(display.hasMessage("round 1: ana deals"))

	a.Equal(ErrRoundInProgress, g.Start())
	a.Equal(1, g.Round())
}

func TestGame_Play_NotStarted(t *testing.T) {
	g, _ := setupGame(t, newScriptedDecider(nil))
	result, err := g.Play(context.Background())
	assert.Nil(t, result)
	assert.Equal(t, ErrRoundNotStarted, err)
}

func TestGame_Play_DealerReachesTarget(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"ana": {ChoiceDraw, ChoiceDraw},
	})
	g, display := setupGame(t, decider)
	stackStock(t, g, "4_oros", "5_oros", "7_oros", "sota_copas")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	// the dealer stops at 7.5 without being asked again
	a.Len(decider.statesOf("ana"), 1)
	a.Equal(1, len(decider.scripts["ana"]))

	a.Equal("ana", result.Winner)
	a.Equal(7.5, result.WinningPoints)
	a.True(result.HasWinner())
	a.True(display.hasMessage("ana turned up 7_oros"))
	a.True(display.hasMessage("ana drew sota_copas"))
	a.True(display.hasMessage("ana reached 7.5"))
	a.True(display.hasMessage("eva sticks with 0"))
	a.True(display.hasMessage("the winner is ana with 7.5!"))

	standing, ok := result.Standing("ana")
	a.True(ok)
	a.Equal([]string{"7_oros", "sota_copas"}, standing.Cards)
	a.True(standing.Dealer)
	a.Equal(7.5, standing.Score)

	_, ok = result.Standing("nobody")
	a.False(ok)

	// the dealer keeps the deal
	a.Equal("ana", g.Dealer().Nickname)
	a.Equal([]string{"eva", "luis", "ana"}, nicknames(g.Players()))
	a.Equal(map[string]float64{"eva": 0, "luis": 0, "ana": 7.5}, g.Scores())
	a.False(g.InRound())
	a.Equal(40, g.Stock().Len())
}

func TestGame_Play_PlayerReachesTarget(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"eva": {ChoiceDraw, ChoiceDraw},
	})
	g, display := setupGame(t, decider)
	stackStock(t, g, "7_oros", "1_copas", "2_copas", "rey_bastos")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	a.Len(decider.statesOf("eva"), 1)
	a.True(display.hasMessage("eva reached 7.5"))
	a.Equal("eva", result.Winner)
	a.Equal(7.5, playerByName(g, "eva").Score())
}

func TestGame_Play_Bust(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"eva": {ChoiceDraw, ChoiceDraw},
	})
	g, display := setupGame(t, decider)
	stackStock(t, g, "6_oros", "1_copas", "2_copas", "7_copas")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	a.Len(decider.statesOf("eva"), 1)
	a.True(display.hasMessage("eva busted with 13"))

	standing, _ := result.Standing("eva")
	a.True(standing.Busted)
	a.Equal(13.0, standing.Points)

	a.Equal("ana", result.Winner)
	a.Equal(2.0, result.WinningPoints)
}

func TestGame_Play_DealerWinsTies(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame(t, newScriptedDecider(nil))
	stackStock(t, g, "7_oros", "1_copas", "7_copas")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	a.Equal("ana", result.Winner)
	a.Equal(7.0, result.WinningPoints)
	a.Equal("ana", g.Dealer().Nickname)
	a.Equal([]string{"eva", "luis", "ana"}, nicknames(g.Players()))
}

func TestGame_Play_FirstPlayerWinsTies(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame(t, newScriptedDecider(nil))
	stackStock(t, g, "5_oros", "5_copas", "1_oros")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	a.Equal("eva", result.Winner)
	a.Equal("eva", g.Dealer().Nickname)
	a.Equal([]string{"luis", "ana", "eva"}, nicknames(g.Players()))
	a.Equal(StatusDealer, playerByName(g, "eva").Status())
}

func TestGame_Play_WinnerDealsNext(t *testing.T) {
	a := assert.New(t)

	g, display := setupGame(t, newScriptedDecider(nil))
	stackStock(t, g, "1_oros", "7_oros", "2_oros")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	a.Equal("luis", result.Winner)
	a.True(display.hasMessage("the winner is luis with 7!"))
	a.Equal("luis", g.Dealer().Nickname)
	a.Equal([]string{"ana", "eva", "luis"}, nicknames(g.Players()))
	a.Equal(StatusDealer, playerByName(g, "luis").Status())
	a.Equal(StatusIdle, playerByName(g, "ana").Status())

	for _, p := range g.Players() {
		a.Equal(0, p.Table().Len())
	}

	// the next round starts left of the new dealer
	require.NoError(t, g.Start())
	a.Equal(2, g.Round())
	a.Equal(StatusInTurn, playerByName(g, "ana").Status())
	a.Equal(StatusDealer, playerByName(g, "luis").Status())
	a.True(display.hasMessage("round 2: luis deals"))
}

func TestGame_Play_EveryoneBusts(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"eva":  {ChoiceDraw},
		"luis": {ChoiceDraw},
		"ana":  {ChoiceDraw},
	})
	g, display := setupGame(t, decider)
	stackStock(t, g, "6_oros", "7_oros", "7_espadas", "6_copas", "7_bastos", "7_copas")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	a.False(result.HasWinner())
	a.Equal("", result.Winner)
	a.True(display.hasMessage("everyone busted, nobody wins round 1"))

	for _, s := range result.Standings {
		a.True(s.Busted, s.Nickname)
	}

	a.Equal("ana", g.Dealer().Nickname)
	a.Equal([]string{"eva", "luis", "ana"}, nicknames(g.Players()))
	a.Equal(map[string]float64{"eva": 0, "luis": 0, "ana": 0}, g.Scores())
}

func TestGame_Play_DealerCannotReveal(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"ana": {ChoiceRevealAndDraw, Choice(9), ChoiceStand},
	})
	g, display := setupGame(t, decider)
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	states := decider.statesOf("ana")
	a.Len(states, 3)
	a.Equal([]Choice{ChoiceDraw, ChoiceStand}, states[0].Choices)
	for _, state := range states {
		a.Len(state.Private.Cards, 1)
		a.Equal(37, state.Public.StockLeft)
	}

	a.True(display.hasMessage("option >2< not available"))
	a.True(display.hasMessage("option >9< not available"))

	standing, _ := result.Standing("ana")
	a.Equal([]string{"3_oros"}, standing.Cards)
}

func TestGame_Play_RevealAndDraw(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"eva": {ChoiceRevealAndDraw},
	})
	g, display := setupGame(t, decider)
	stackStock(t, g, "2_oros", "1_copas", "3_copas", "4_copas")
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	require.NoError(t, err)

	states := decider.statesOf("eva")
	require.Len(t, states, 2)

	first := states[0]
	a.Equal([]Choice{ChoiceDraw, ChoiceRevealAndDraw, ChoiceStand}, first.Choices)
	a.Equal(StatusInTurn, first.Private.Status)
	a.Equal([]CardView{{ID: "2_oros", Points: 2, Hidden: true}}, first.Private.Cards)
	a.Equal([]string{"hidden"}, first.Public.Seats[0].Cards)
	a.Equal(0.0, first.Public.Seats[0].VisiblePoints)

	second := states[1]
	a.Equal([]CardView{
		{ID: "2_oros", Points: 2, Hidden: false},
		{ID: "4_copas", Points: 4, Hidden: true},
	}, second.Private.Cards)
	a.Equal(6.0, second.Private.Points)
	a.Equal([]string{"2_oros", "hidden"}, second.Public.Seats[0].Cards)
	a.Equal(2.0, second.Public.Seats[0].VisiblePoints)

	a.True(display.hasMessage("eva turned up 2_oros and drew a hidden card"))
	a.True(display.hasMessage("eva sticks with 2"))

	// the dealer's card is turned up before the dealer decides
	dealer := decider.statesOf("ana")
	require.Len(t, dealer, 1)
	a.False(dealer[0].Private.Cards[0].Hidden)
	a.Equal([]string{"3_copas"}, dealer[0].Public.Seats[2].Cards)

	a.Equal("eva", result.Winner)
	a.Equal(6.0, result.WinningPoints)
}

func TestGame_Play_Resume(t *testing.T) {
	a := assert.New(t)

	failed := false
	errDecider := errors.New("connection lost")
	decider := DeciderFunc(func(_ context.Context, state TurnState) (Choice, error) {
		if state.Private.Nickname == "luis" && !failed {
			failed = true
			return 0, errDecider
		}

		return ChoiceStand, nil
	})

	g, _ := setupGame(t, decider)
	require.NoError(t, g.Start())

	result, err := g.Play(context.Background())
	a.Nil(result)
	a.Equal(errDecider, err)
	a.True(g.InRound())
	a.Equal(StatusDone, playerByName(g, "eva").Status())
	a.Equal(StatusInTurn, playerByName(g, "luis").Status())

	result, err = g.Play(context.Background())
	a.NoError(err)
	a.Equal("ana", result.Winner)
	a.False(g.InRound())
}

func TestGame_Play_Cancelled(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame(t, newScriptedDecider(nil))
	require.NoError(t, g.Start())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.Play(ctx)
	a.Nil(result)
	a.True(errors.Is(err, context.Canceled))
	a.True(g.InRound())
}

func TestGame_Play_InsufficientStock(t *testing.T) {
	a := assert.New(t)

	decider := newScriptedDecider(map[string][]Choice{
		"eva": {ChoiceDraw},
	})

	opts := DefaultOptions()
	opts.RNG = keepOrder{}
	opts.Definition = tinyDefinition("1", "2", "3")
	g, err := NewGame(testLogger(), []string{"ana", "luis", "eva"}, decider, nil, opts)
	require.NoError(t, err)
	require.NoError(t, g.Start())
	a.Equal(0, g.Stock().Len())

	result, err := g.Play(context.Background())
	a.Nil(result)

	var stockErr *InsufficientStockError
	a.True(errors.As(err, &stockErr))
	a.Equal(1, stockErr.Missing)
	a.Equal(1, playerByName(g, "eva").Table().Len())
	a.True(g.InRound())
}

func TestGame_Start_InsufficientStock(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Definition = tinyDefinition("1", "2")
	g, err := NewGame(testLogger(), []string{"ana", "luis", "eva"}, newScriptedDecider(nil), nil, opts)
	require.NoError(t, err)

	err = g.Start()
	var stockErr *InsufficientStockError
	a.True(errors.As(err, &stockErr))
	a.Equal(1, stockErr.Missing)
	a.False(g.InRound())
	a.Equal(0, g.Round())
}

func TestGame_Run(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.RNG = keepOrder{}
	opts.MaxRounds = 3

	g, err := NewGame(testLogger(), []string{"ana", "luis", "eva"}, newScriptedDecider(nil), nil, opts)
	require.NoError(t, err)

	recorder := &memoryRecorder{err: errors.New("disk full")}
	g.AddRecorder(recorder)

	a.NoError(g.Run(context.Background()))
	a.Equal(3, g.Round())
	a.Len(recorder.results, 3)

	for i, result := range recorder.results {
		a.Equal(i+1, result.Round)
		a.Equal("ana", result.Winner)
		a.NotEmpty(result.UUID)
		a.Equal(fmt.Sprintf("round %d: ana deals", i+1), result.Log[0].String())
		a.Equal("the winner is ana with 3!", result.Log[len(result.Log)-1].String())
	}

	a.Equal(9.0, playerByName(g, "ana").Score())
}

func TestGame_Run_Cancelled(t *testing.T) {
	g, _ := setupGame(t, newScriptedDecider(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, context.Canceled, g.Run(ctx))
	assert.Equal(t, 0, g.Round())
}

func TestAdvanceTurn(t *testing.T) {
	a := assert.New(t)

	players := []*Player{NewPlayer("eva"), NewPlayer("luis"), NewPlayer("ana")}
	players[0].status = StatusDone
	players[2].status = StatusDealer

	AdvanceTurn(players)
	a.Equal(StatusInTurn, players[1].Status())

	players[1].status = StatusDone
	AdvanceTurn(players)
	a.Equal(StatusDone, players[0].Status())
	a.Equal(StatusDone, players[1].Status())
	a.Equal(StatusDealer, players[2].Status())
}

func TestGame_validatePartition(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame(t, newScriptedDecider(nil))
	require.NoError(t, g.Start())
	a.NoError(g.validatePartition())

	// a card on a table and in the stock at the same time
	card, _ := playerByName(g, "eva").Table().Oldest()
	require.NoError(t, g.Stock().Add(card))
	err := g.validatePartition()
	a.True(errors.Is(err, ErrPartitionViolated))
	a.EqualError(err, "cards in play do not match the deck: 1_oros found 2 times")
	require.NoError(t, g.Stock().Remove(card))

	// a card that went missing
	_, err = g.Stock().TakeOldest()
	require.NoError(t, err)
	err = g.validatePartition()
	a.True(errors.Is(err, ErrPartitionViolated))
	a.EqualError(err, "cards in play do not match the deck: found 39 distinct cards, expected 40")
}
