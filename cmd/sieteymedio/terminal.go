package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"sieteymedio/pkg/playable"
	"sieteymedio/pkg/playable/sieteymedio"
)

const defaultWidth = 60

// ErrQuit is returned when the player asks to leave the game
var ErrQuit = errors.New("quit")

// Terminal plays every seat from one keyboard, hot seat style
// It is the game's Decider and one of its Displays.
type Terminal struct {
	in       *bufio.Reader
	lines    chan line
	readOnce sync.Once
	out      io.Writer
	width    int

	header  lipgloss.Style
	dealer  lipgloss.Style
	hidden  lipgloss.Style
	message lipgloss.Style
	prompt  lipgloss.Style
}

type line struct {
	text string
	err  error
}

// NewTerminal returns a terminal reading choices from in and writing to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	renderer := lipgloss.NewRenderer(out)

	return &Terminal{
		in:      bufio.NewReader(in),
		lines:   make(chan line, 1),
		out:     out,
		width:   terminalWidth(out),
		header:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		dealer:  renderer.NewStyle().Foreground(lipgloss.Color("11")),
		hidden:  renderer.NewStyle().Foreground(lipgloss.Color("8")),
		message: renderer.NewStyle().Foreground(lipgloss.Color("12")),
		prompt:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}

// Render prints the table, then the cards of the acting player
func (t *Terminal) Render(public sieteymedio.PublicView, private sieteymedio.PrivateView) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("─", t.width))
	sb.WriteString("\n")
	sb.WriteString(t.header.Render(fmt.Sprintf("round %d, %d cards left", public.Round, public.StockLeft)))
	sb.WriteString("\n")

	for _, seat := range public.Seats {
		cards := make([]string, len(seat.Cards))
		for i, card := range seat.Cards {
			if card == "hidden" {
				cards[i] = t.hidden.Render(card)
			} else {
				cards[i] = card
			}
		}

		name := seat.Nickname
		if seat.Nickname == public.Dealer {
			name = t.dealer.Render(name + " (dealer)")
		}

		fmt.Fprintf(&sb, "%s >> %s [%g]\n", name, strings.Join(cards, ","), seat.VisiblePoints)
	}

	fmt.Fprintf(&sb, "\n%s\n", t.header.Render(fmt.Sprintf("%s (%s)", private.Nickname, private.Status)))
	for _, card := range private.Cards {
		state := "face up"
		if card.Hidden {
			state = "face down"
		}

		fmt.Fprintf(&sb, "  %s (%g) %s\n", card.ID, card.Points, state)
	}
	fmt.Fprintf(&sb, "  = %g\n", private.Points)

	_, _ = io.WriteString(t.out, sb.String())
}

// Notify prints the messages
func (t *Terminal) Notify(messages ...*playable.LogMessage) {
	for _, msg := range messages {
		_, _ = fmt.Fprintln(t.out, t.message.Render(msg.String()))
	}
}

// readLines feeds lines to Decide until the input fails
// A read cannot be interrupted, so it runs on its own and Decide waits on the context as well.
func (t *Terminal) readLines() {
	for {
		text, err := t.in.ReadString('\n')
		t.lines <- line{text: text, err: err}
		if err != nil {
			close(t.lines)
			return
		}
	}
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	t.readOnce.Do(func() {
		go t.readLines()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}

		return l.text, l.err
	}
}

// Decide asks the acting player for a choice until they type a number or q to quit
func (t *Terminal) Decide(ctx context.Context, state sieteymedio.TurnState) (sieteymedio.Choice, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		_, _ = fmt.Fprintf(t.out, "%s, your move:\n%s", t.prompt.Render(state.Private.Nickname), sieteymedio.ChoicesMessage(state.Choices))

		text, err := t.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}

		response := strings.TrimSpace(text)
		if err != nil && (response == "" || !errors.Is(err, io.EOF)) {
			return 0, err
		}

		if response == "q" {
			return 0, ErrQuit
		}

		n, convErr := strconv.Atoi(response)
		if convErr != nil {
			_, _ = fmt.Fprintf(t.out, "option >%s< not available\n", response)
			if err != nil {
				return 0, err
			}

			continue
		}

		return sieteymedio.Choice(n), nil
	}
}

// Scores prints the scores of every player, best first
func (t *Terminal) Scores(players []*sieteymedio.Player) {
	sorted := append([]*sieteymedio.Player{}, players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score() > sorted[j].Score()
	})

	_, _ = fmt.Fprintln(t.out, t.header.Render("scores"))
	for _, p := range sorted {
		_, _ = fmt.Fprintf(t.out, "  %-20s %g\n", p.Nickname, p.Score())
	}
}
