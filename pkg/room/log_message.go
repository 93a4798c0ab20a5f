package room

import (
	"sieteymedio/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping only the last logMessageLimit
// Note: the caller must hold r.mu
func (r *Room) addLogMessages(messages []*playable.LogMessage) {
	m := append(r.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = append([]*playable.LogMessage{}, m[count-logMessageLimit:]...)
	}

	r.logMessages = m
}
