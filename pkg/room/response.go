package room

import (
	"sieteymedio/pkg/playable"
	"sieteymedio/pkg/playable/sieteymedio"
)

// Response is a message sent to the spectators
type Response struct {
	Key  string      `json:"key"`
	Data interface{} `json:"data,omitempty"`
}

// Response keys
const (
	KeyState      = "state"
	KeyLog        = "log"
	KeyRoundEnded = "roundEnded"
)

// State is everything a spectator can see
// Only the public view of the table is ever kept, so face down cards never reach a spectator.
type State struct {
	Game       string                   `json:"game"`
	Table      *sieteymedio.PublicView  `json:"table"`
	Log        []*playable.LogMessage   `json:"log"`
	LastRound  *sieteymedio.RoundResult `json:"lastRound"`
	Spectators int                      `json:"spectators"`
}
