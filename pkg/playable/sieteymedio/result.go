package sieteymedio

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sieteymedio/pkg/deck"
	"sieteymedio/pkg/playable"
)

// RoundResult contains the results of a completed round
type RoundResult struct {
	UUID          string                 `json:"uuid"`
	Round         int                    `json:"round"`
	Dealer        string                 `json:"dealer"`
	Winner        string                 `json:"winner"`
	WinningPoints float64                `json:"winningPoints"`
	Standings     []Standing             `json:"standings"`
	Log           []*playable.LogMessage `json:"log"`
	Time          time.Time              `json:"time"`
}

// Standing is how a single player finished the round
type Standing struct {
	Nickname string   `json:"nickname"`
	Cards    []string `json:"cards"`
	Points   float64  `json:"points"`
	Busted   bool     `json:"busted"`
	Dealer   bool     `json:"dealer"`
	Score    float64  `json:"score"`
}

// HasWinner returns false when every player busted
func (r *RoundResult) HasWinner() bool {
	return r.Winner != ""
}

// Standing returns the standing of the player
func (r *RoundResult) Standing(nickname string) (Standing, bool) {
	for _, s := range r.Standings {
		if s.Nickname == nickname {
			return s, true
		}
	}

	return Standing{}, false
}

// findWinner returns the player closest to 7.5 without going over, nil if everyone busted
// The dealer wins ties. Between other players with the same points, the one who played first wins.
func findWinner(players []*Player, dealer *Player) *Player {
	var winner *Player
	for _, p := range players {
		if p.IsBusted() {
			continue
		}

		points := p.table.Points()
		switch {
		case winner == nil:
			winner = p
		case points > winner.table.Points():
			winner = p
		case points == winner.table.Points() && p == dealer:
			winner = p
		}
	}

	return winner
}

// resolveRound picks the winner and adds the points of their table to their score
func (g *Game) resolveRound() *RoundResult {
	winner := findWinner(g.players, g.dealer)

	result := &RoundResult{
		UUID:   uuid.New().String(),
		Round:  g.round,
		Dealer: g.dealer.Nickname,
		Time:   time.Now(),
	}

	if winner != nil {
		result.Winner = winner.Nickname
		result.WinningPoints = winner.table.Points()
		winner.score += result.WinningPoints
	}

	result.Standings = make([]Standing, len(g.players))
	for i, p := range g.players {
		result.Standings[i] = Standing{
			Nickname: p.Nickname,
			Cards:    p.table.IDs(),
			Points:   p.table.Points(),
			Busted:   p.IsBusted(),
			Dealer:   p == g.dealer,
			Score:    p.score,
		}
	}

	return result
}

// finishRound announces the result and hands it to the recorders
func (g *Game) finishRound(ctx context.Context, result *RoundResult) {
	log := g.logger.WithFields(logrus.Fields{
		"round":  result.Round,
		"winner": result.Winner,
		"points": result.WinningPoints,
	})

	if result.HasWinner() {
		g.notify(playable.SimpleLogMessage(result.Winner, "the winner is {} with %g!", result.WinningPoints))
	} else {
		g.notify(playable.SimpleLogMessage("", "everyone busted, nobody wins round %d", result.Round))
	}

	log.Info("round complete")

	result.Log = append([]*playable.LogMessage{}, g.logMessages...)
	for _, r := range g.recorders {
		if err := r.RecordRound(ctx, result); err != nil {
			log.WithError(err).Error("could not record round")
		}
	}
}

// nextRound clears every card, rebuilds the stock and seats the winner as the next dealer
// The seating keeps going around the table the same way: the winner moves to the end of the turn order and the
// players that followed them go first. When nobody wins the dealer keeps the deal.
func (g *Game) nextRound(result *RoundResult) error {
	for _, p := range g.players {
		p.reset()
	}

	g.stock.Clear()
	g.wastepile.Clear()
	g.tableau.Clear()

	stock, err := deck.Build(g.options.Definition)
	if err != nil {
		return err
	}
	g.stock = stock

	if result.HasWinner() && result.Winner != g.dealer.Nickname {
		for _, p := range g.players {
			if p.Nickname == result.Winner {
				g.dealer = p
				break
			}
		}

		seatLast(g.players, g.dealer)
	}

	g.dealer.status = StatusDealer
	g.inRound = false
	return nil
}

// seatLast rotates the players so p is the last one, keeping everyone's neighbours
func seatLast(players []*Player, p *Player) {
	idx := -1
	for i, player := range players {
		if player == p {
			idx = i
			break
		}
	}

	if idx < 0 {
		return
	}

	rotated := make([]*Player, 0, len(players))
	rotated = append(rotated, players[idx+1:]...)
	rotated = append(rotated, players[:idx+1]...)
	copy(players, rotated)
}
