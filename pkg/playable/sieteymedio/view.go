package sieteymedio

// hiddenCard is how a face down card shows up in the public view
const hiddenCard = "hidden"

// PublicView is what every player at the table can see
type PublicView struct {
	Round     int          `json:"round"`
	Dealer    string       `json:"dealer"`
	StockLeft int          `json:"stockLeft"`
	Seats     []PublicSeat `json:"seats"`
}

// PublicSeat is a single player as seen by the table
type PublicSeat struct {
	Nickname      string   `json:"nickname"`
	Status        Status   `json:"status"`
	Cards         []string `json:"cards"`
	VisiblePoints float64  `json:"visiblePoints"`
	Score         float64  `json:"score"`
}

// PrivateView is what a player knows about their own table
type PrivateView struct {
	Nickname string     `json:"nickname"`
	Status   Status     `json:"status"`
	Cards    []CardView `json:"cards"`
	Points   float64    `json:"points"`
	Score    float64    `json:"score"`
}

// CardView is a card as seen by its owner
type CardView struct {
	ID     string  `json:"id"`
	Points float64 `json:"points"`
	Hidden bool    `json:"hidden"`
}

// TurnState is everything a Decider gets to make a decision
type TurnState struct {
	Round   int         `json:"round"`
	Public  PublicView  `json:"public"`
	Private PrivateView `json:"private"`
	Choices []Choice    `json:"choices"`
}

// PublicView returns the public view of the table
func (g *Game) PublicView() PublicView {
	dealer := ""
	if g.dealer != nil {
		dealer = g.dealer.Nickname
	}

	seats := make([]PublicSeat, len(g.players))
	for i, p := range g.players {
		cards := make([]string, 0, p.table.Len())
		for _, card := range p.table.Cards() {
			if card.Hidden() {
				cards = append(cards, hiddenCard)
			} else {
				cards = append(cards, card.ID())
			}
		}

		seats[i] = PublicSeat{
			Nickname:      p.Nickname,
			Status:        p.status,
			Cards:         cards,
			VisiblePoints: p.table.VisiblePoints(),
			Score:         p.score,
		}
	}

	return PublicView{
		Round:     g.round,
		Dealer:    dealer,
		StockLeft: g.stock.Len(),
		Seats:     seats,
	}
}

// PrivateViewOf returns the table of the player, including face down cards
func PrivateViewOf(p *Player) PrivateView {
	cards := make([]CardView, 0, p.table.Len())
	for _, card := range p.table.Cards() {
		cards = append(cards, CardView{
			ID:     card.ID(),
			Points: card.Points(),
			Hidden: card.Hidden(),
		})
	}

	return PrivateView{
		Nickname: p.Nickname,
		Status:   p.status,
		Cards:    cards,
		Points:   p.table.Points(),
		Score:    p.score,
	}
}
