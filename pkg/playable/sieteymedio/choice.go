package sieteymedio

import (
	"fmt"
	"strings"
)

// Choice is a decision a player makes during their turn
type Choice int

// Choice constants
const (
	// ChoiceDraw deals a face up card; the hidden card stays hidden
	ChoiceDraw Choice = 1

	// ChoiceRevealAndDraw turns the hidden card face up and deals a new face down card. Not available to the dealer
	ChoiceRevealAndDraw Choice = 2

	// ChoiceStand ends the turn
	ChoiceStand Choice = 3
)

func (c Choice) String() string {
	switch c {
	case ChoiceDraw:
		return "draw"
	case ChoiceRevealAndDraw:
		return "reveal-and-draw"
	case ChoiceStand:
		return "stand"
	}

	return fmt.Sprintf("choice(%d)", int(c))
}

// Description is the text shown next to the choice when prompting a player
func (c Choice) Description() string {
	switch c {
	case ChoiceDraw:
		return "request card"
	case ChoiceRevealAndDraw:
		return "face up and request card"
	case ChoiceStand:
		return "stick with your game"
	}

	return "not available"
}

// ChoicesFor returns the choices a player with the status may make
func ChoicesFor(status Status) []Choice {
	if status == StatusDealer {
		return []Choice{ChoiceDraw, ChoiceStand}
	}

	return []Choice{ChoiceDraw, ChoiceRevealAndDraw, ChoiceStand}
}

// ChoicesMessage builds the prompt listing the choices
func ChoicesMessage(choices []Choice) string {
	var sb strings.Builder
	for _, c := range choices {
		fmt.Fprintf(&sb, "'%d' >> %s\n", int(c), c.Description())
	}

	return sb.String()
}

func hasChoice(choices []Choice, choice Choice) bool {
	for _, c := range choices {
		if c == choice {
			return true
		}
	}

	return false
}
