// Package playable holds the pieces shared between a game and whoever watches it
package playable

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LogMessage is the format a game should send log messages in
// If Players is empty, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Players []string  `json:"players"`
	Cards   []string  `json:"cards"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// String replaces every {} placeholder with the next player
func (l *LogMessage) String() string {
	msg := l.Message
	for _, player := range l.Players {
		msg = strings.Replace(msg, "{}", player, 1)
	}

	return msg
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(player string, format string, a ...interface{}) *LogMessage {
	var players []string
	if player != "" {
		players = []string{player}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Players: players,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// WithCards attaches card identities to the message
func (l *LogMessage) WithCards(cards ...string) *LogMessage {
	l.Cards = append(l.Cards, cards...)
	return l
}
