// Package sieteymedio implements "siete y media", a Spanish-deck cousin of blackjack
//
// Every player gets one face down card and may ask for more, trying to get as close as possible to 7.5 points
// without going over. The dealer plays last and wins ties. The winner of a round deals the next one.
package sieteymedio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"sieteymedio/internal/rng"
	"sieteymedio/pkg/deck"
	"sieteymedio/pkg/playable"
)

// Game is a game of siete y media
type Game struct {
	options Options

	// players is the turn order. The dealer is always last
	players   []*Player
	dealer    *Player
	stock     *deck.CardSet
	wastepile *deck.CardSet // reserved for discards
	tableau   *deck.CardSet // reserved for shared cards

	round   int
	seated  bool
	inRound bool

	rng       rng.Generator
	decider   Decider
	display   Display
	recorders []Recorder
	logger    logrus.FieldLogger

	// logMessages holds the messages of the current round
	logMessages []*playable.LogMessage
}

// NewGame returns a new game
// The first nickname deals the first round.
func NewGame(logger logrus.FieldLogger, nicknames []string, decider Decider, display Display, options Options) (*Game, error) {
	if len(nicknames) < minPlayers || len(nicknames) > maxPlayers {
		return nil, PlayerCountError(len(nicknames))
	}

	if decider == nil {
		return nil, ErrNoDecider
	}

	players := make([]*Player, len(nicknames))
	seen := make(map[string]bool, len(nicknames))
	for i, nickname := range nicknames {
		if strings.TrimSpace(nickname) == "" {
			return nil, ErrEmptyNickname
		}

		if seen[nickname] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNickname, nickname)
		}

		seen[nickname] = true
		players[i] = NewPlayer(nickname)
	}

	def := options.Definition
	if def.Points == nil && len(def.Values) == 0 && len(def.Suits) == 0 {
		options.Definition = deck.Spanish40()
	}

	stock, err := deck.Build(options.Definition)
	if err != nil {
		return nil, err
	}

	if options.RNG == nil {
		options.RNG = rng.Crypto{}
	}

	if display == nil {
		display = nopDisplay{}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Game{
		options:   options,
		players:   players,
		stock:     stock,
		wastepile: deck.NewCardSet(),
		tableau:   deck.NewCardSet(),
		rng:       options.RNG,
		decider:   decider,
		display:   display,
		logger:    logger,
	}, nil
}

// AddRecorder registers a recorder that receives every completed round
func (g *Game) AddRecorder(r Recorder) {
	g.recorders = append(g.recorders, r)
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Siete y Media"
}

// Players returns a shallow clone of the players in turn order
func (g *Game) Players() []*Player {
	return append([]*Player{}, g.players...)
}

// Dealer returns the dealer of the current (or next) round, nil before the first round
func (g *Game) Dealer() *Player {
	return g.dealer
}

// Round returns the number of the current round. Zero means no round was started yet
func (g *Game) Round() int {
	return g.round
}

// InRound returns true if the cards are dealt and the round is not resolved yet
func (g *Game) InRound() bool {
	return g.inRound
}

// Stock returns the undealt cards
func (g *Game) Stock() *deck.CardSet {
	return g.stock
}

// Scores returns the score of every player
func (g *Game) Scores() map[string]float64 {
	scores := make(map[string]float64, len(g.players))
	for _, p := range g.players {
		scores[p.Nickname] = p.score
	}

	return scores
}

func (g *Game) tables() []*deck.CardSet {
	tables := make([]*deck.CardSet, len(g.players))
	for i, p := range g.players {
		tables[i] = p.table
	}

	return tables
}

// Start deals a new round
// Before the first round the first player becomes the dealer and the turn order is reversed, so the player to the
// dealer's right goes first and the dealer goes last. Then the stock is shuffled and every player gets a face down card.
func (g *Game) Start() error {
	if g.inRound {
		return ErrRoundInProgress
	}

	if !g.seated {
		g.dealer = g.players[0]
		reversePlayers(g.players)
		g.seated = true
	}

	g.dealer.status = StatusDealer

	g.stock.Shuffle(g.rng)
	if err := Redistribute(1, g.stock, g.tables(), true); err != nil {
		return err
	}

	g.round++
	g.logMessages = nil
	g.players[0].status = StatusInTurn
	g.inRound = true

	g.logger.WithFields(logrus.Fields{
		"round":  g.round,
		"dealer": g.dealer.Nickname,
	}).Debug("round started")
	g.notify(playable.SimpleLogMessage(g.dealer.Nickname, "round %d: {} deals", g.round))

	return nil
}

// Play runs the turn of every player, the dealer last, and resolves the round
// If a turn fails (the context is done, the decider fails, the stock runs out) the round stays in progress and
// Play can be called again to resume with the next unfinished player.
func (g *Game) Play(ctx context.Context) (*RoundResult, error) {
	if !g.inRound {
		return nil, ErrRoundNotStarted
	}

	for _, p := range g.players {
		if p.status == StatusDone {
			continue
		}

		if err := g.playTurn(ctx, p); err != nil {
			return nil, err
		}
	}

	if err := g.validatePartition(); err != nil {
		return nil, err
	}

	result := g.resolveRound()
	g.finishRound(ctx, result)

	if err := g.nextRound(result); err != nil {
		return nil, err
	}

	return result, nil
}

// Run plays rounds back to back until the context is done or Options.MaxRounds rounds were played
func (g *Game) Run(ctx context.Context) error {
	for g.options.MaxRounds <= 0 || g.round < g.options.MaxRounds {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !g.inRound {
			if err := g.Start(); err != nil {
				return err
			}
		}

		if _, err := g.Play(ctx); err != nil {
			return err
		}
	}

	return nil
}

// playTurn asks the player for choices until they stand, reach 7.5 or bust
func (g *Game) playTurn(ctx context.Context, p *Player) error {
	log := g.logger.WithFields(logrus.Fields{
		"round":  g.round,
		"player": p.Nickname,
	})

	// the dealer only has one card at this point, and the dealer's cards are always face up
	if p.status == StatusDealer {
		if card, ok := p.table.RevealFirstHidden(); ok {
			g.notify(playable.SimpleLogMessage(p.Nickname, "{} turned up %s", card.ID()).WithCards(card.ID()))
		}
	}

	for p.status != StatusDone && p.table.Points() < Target {
		if err := ctx.Err(); err != nil {
			return err
		}

		choices := ChoicesFor(p.status)
		private := PrivateViewOf(p)
		public := g.PublicView()
		g.display.Render(public, private)

		choice, err := g.decider.Decide(ctx, TurnState{
			Round:   g.round,
			Public:  public,
			Private: private,
			Choices: choices,
		})
		if err != nil {
			return err
		}

		if err := g.applyChoice(p, choice); err != nil {
			if errors.Is(err, ErrInvalidChoice) {
				log.WithField("choice", int(choice)).Debug("invalid choice")
				g.notify(playable.SimpleLogMessage(p.Nickname, "option >%d< not available", int(choice)))
				continue
			}

			return err
		}

		log.WithFields(logrus.Fields{
			"choice": choice.String(),
			"points": p.table.Points(),
		}).Debug("player made a choice")
	}

	p.status = StatusDone

	points := p.table.Points()
	switch {
	case points > Target:
		g.notify(playable.SimpleLogMessage(p.Nickname, "{} busted with %g", points))
	case points == Target:
		g.notify(playable.SimpleLogMessage(p.Nickname, "{} reached %g", points))
	default:
		g.notify(playable.SimpleLogMessage(p.Nickname, "{} sticks with %g", p.table.VisiblePoints()))
	}

	g.display.Render(g.PublicView(), PrivateViewOf(p))
	AdvanceTurn(g.players)
	return nil
}

func (g *Game) applyChoice(p *Player, choice Choice) error {
	if !hasChoice(ChoicesFor(p.status), choice) {
		return fmt.Errorf("%w: %d", ErrInvalidChoice, int(choice))
	}

	switch choice {
	case ChoiceDraw:
		card, err := g.dealTo(p, false)
		if err != nil {
			return err
		}

		g.notify(playable.SimpleLogMessage(p.Nickname, "{} drew %s", card.ID()).WithCards(card.ID()))
	case ChoiceRevealAndDraw:
		// check before revealing, so running out of cards changes nothing
		if g.stock.Len() == 0 {
			return &InsufficientStockError{Missing: 1}
		}

		revealed, ok := p.table.RevealFirstHidden()
		if _, err := g.dealTo(p, true); err != nil {
			return err
		}

		if ok {
			g.notify(playable.SimpleLogMessage(p.Nickname, "{} turned up %s and drew a hidden card", revealed.ID()).WithCards(revealed.ID()))
		} else {
			g.notify(playable.SimpleLogMessage(p.Nickname, "{} drew a hidden card"))
		}
	case ChoiceStand:
		p.status = StatusDone
	}

	return nil
}

func (g *Game) dealTo(p *Player, hidden bool) (*deck.Card, error) {
	if g.stock.Len() == 0 {
		return nil, &InsufficientStockError{Missing: 1}
	}

	return moveOldest(g.stock, p.table, hidden)
}

// AdvanceTurn gives the turn to the first idle player
// When nobody is idle only the dealer is left, and the dealer's turn is started by the caller.
func AdvanceTurn(players []*Player) {
	for _, p := range players {
		if p.status == StatusIdle {
			p.status = StatusInTurn
			return
		}
	}
}

// validatePartition ensures every card of the deck is in exactly one set
func (g *Game) validatePartition() error {
	seen := make(map[string]int, g.options.Definition.Size())
	sets := []*deck.CardSet{g.stock, g.wastepile, g.tableau}
	for _, p := range g.players {
		sets = append(sets, p.hand, p.table)
	}

	for _, set := range sets {
		for _, id := range set.IDs() {
			seen[id]++
		}
	}

	if want := g.options.Definition.Size(); len(seen) != want {
		return fmt.Errorf("%w: found %d distinct cards, expected %d", ErrPartitionViolated, len(seen), want)
	}

	for id, count := range seen {
		if count != 1 {
			return fmt.Errorf("%w: %s found %d times", ErrPartitionViolated, id, count)
		}
	}

	return nil
}

func (g *Game) notify(messages ...*playable.LogMessage) {
	g.logMessages = append(g.logMessages, messages...)
	g.display.Notify(messages...)
}

func reversePlayers(players []*Player) {
	for i, j := 0, len(players)-1; i < j; i, j = i+1, j-1 {
		players[i], players[j] = players[j], players[i]
	}
}
