// Package history keeps the results of completed rounds
package history

import (
	"context"
	"sync"

	"sieteymedio/pkg/playable/sieteymedio"
)

// DefaultMemoryLimit is how many rounds Memory keeps when no limit is given
const DefaultMemoryLimit = 100

// Memory keeps the most recent rounds in memory
type Memory struct {
	mu      sync.RWMutex
	limit   int
	results []*sieteymedio.RoundResult
}

// NewMemory returns a recorder that keeps up to limit rounds, dropping the oldest
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}

	return &Memory{
		limit:   limit,
		results: make([]*sieteymedio.RoundResult, 0),
	}
}

// RecordRound keeps the round
func (m *Memory) RecordRound(_ context.Context, result *sieteymedio.RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, result)
	if over := len(m.results) - m.limit; over > 0 {
		m.results = append([]*sieteymedio.RoundResult{}, m.results[over:]...)
	}

	return nil
}

// Rounds returns the kept rounds, most recent first
func (m *Memory) Rounds() []*sieteymedio.RoundResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rounds := make([]*sieteymedio.RoundResult, len(m.results))
	for i, result := range m.results {
		rounds[len(m.results)-1-i] = result
	}

	return rounds
}

// ListRounds returns a page of the kept rounds, most recent first
func (m *Memory) ListRounds(_ context.Context, offset int64, limit int) ([]*sieteymedio.RoundResult, error) {
	return page(m.Rounds(), offset, limit), nil
}

// ListRoundsWonBy returns a page of the kept rounds won by the player, most recent first
func (m *Memory) ListRoundsWonBy(_ context.Context, nickname string, offset int64, limit int) ([]*sieteymedio.RoundResult, error) {
	won := make([]*sieteymedio.RoundResult, 0)
	for _, result := range m.Rounds() {
		if result.HasWinner() && result.Winner == nickname {
			won = append(won, result)
		}
	}

	return page(won, offset, limit), nil
}

func page(rounds []*sieteymedio.RoundResult, offset int64, limit int) []*sieteymedio.RoundResult {
	if offset >= int64(len(rounds)) {
		return []*sieteymedio.RoundResult{}
	}

	rounds = rounds[offset:]
	if limit < len(rounds) {
		rounds = rounds[:limit]
	}

	return rounds
}
