// Package model stores the history of played rounds in Postgres
// The history is only ever appended to and read back for display. Games never resume from it.
package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"sieteymedio/pkg/db"
	"sieteymedio/pkg/playable"
	"sieteymedio/pkg/playable/sieteymedio"
)

const roundColumns = `
rounds.id,
rounds.uuid,
rounds.round,
rounds.dealer,
rounds.winner,
rounds.winning_points,
rounds.players,
rounds.standings,
rounds.log,
rounds.played,
rounds.created`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if the same round is saved twice
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Round is a record in the `rounds` table
type Round struct {
	ID            int64                  `json:"id"`
	UUID          string                 `json:"uuid"`
	Round         int                    `json:"round"`
	Dealer        string                 `json:"dealer"`
	Winner        string                 `json:"winner"`
	WinningPoints float64                `json:"winningPoints"`
	Players       []string               `json:"players"`
	Standings     []sieteymedio.Standing `json:"standings"`
	Log           []*playable.LogMessage `json:"log"`
	Played        time.Time              `json:"played"`
	Created       time.Time              `json:"created"`
}

func getRoundByRow(row db.Scanner) (*Round, error) {
	var round Round
	var winner sql.NullString
	var standings, log []byte
	if err := row.Scan(&round.ID, &round.UUID, &round.Round, &round.Dealer, &winner, &round.WinningPoints, pq.Array(&round.Players), &standings, &log, &round.Played, &round.Created); err != nil {
		return nil, err
	}

	round.Winner = winner.String

	if err := json.Unmarshal(standings, &round.Standings); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(log, &round.Log); err != nil {
		return nil, err
	}

	return &round, nil
}

// SaveRound inserts the result of a round
func SaveRound(ctx context.Context, result *sieteymedio.RoundResult) (*Round, error) {
	const query = `
INSERT INTO rounds (uuid, round, dealer, winner, winning_points, players, standings, log, played)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + roundColumns

	players := make([]string, len(result.Standings))
	for i, s := range result.Standings {
		players[i] = s.Nickname
	}

	standings, err := json.Marshal(result.Standings)
	if err != nil {
		return nil, err
	}

	logMessages := result.Log
	if logMessages == nil {
		logMessages = []*playable.LogMessage{}
	}

	log, err := json.Marshal(logMessages)
	if err != nil {
		return nil, err
	}

	winner := sql.NullString{String: result.Winner, Valid: result.HasWinner()}

	row := db.Instance().QueryRowContext(ctx, query, result.UUID, result.Round, result.Dealer, winner, result.WinningPoints, pq.Array(players), standings, log, result.Time)
	round, err := getRoundByRow(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return round, nil
}

func getRounds(rows *sql.Rows, err error) ([]*Round, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]*Round, 0)
	for rows.Next() {
		round, err := getRoundByRow(rows)
		if err != nil {
			return nil, err
		}

		rounds = append(rounds, round)
	}

	return rounds, rows.Err()
}

// ListRounds returns the most recent rounds first
func ListRounds(ctx context.Context, offset int64, limit int) ([]*Round, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
ORDER BY id DESC
OFFSET $1
LIMIT $2`

	return getRounds(db.Instance().QueryContext(ctx, query, offset, limit))
}

// ListRoundsWonBy returns the most recent rounds the player won
func ListRoundsWonBy(ctx context.Context, nickname string, offset int64, limit int) ([]*Round, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
WHERE winner = $1
ORDER BY id DESC
OFFSET $2
LIMIT $3`

	return getRounds(db.Instance().QueryContext(ctx, query, nickname, offset, limit))
}

// Recorder saves every completed round to the database
type Recorder struct{}

// RecordRound saves the round
func (Recorder) RecordRound(ctx context.Context, result *sieteymedio.RoundResult) error {
	_, err := SaveRound(ctx, result)
	return err
}

// Result converts the record back to the result of the round
func (r *Round) Result() *sieteymedio.RoundResult {
	return &sieteymedio.RoundResult{
		UUID:          r.UUID,
		Round:         r.Round,
		Dealer:        r.Dealer,
		Winner:        r.Winner,
		WinningPoints: r.WinningPoints,
		Standings:     r.Standings,
		Log:           r.Log,
		Time:          r.Played,
	}
}

// Store reads the round history back as round results
type Store struct{}

// ListRounds returns a page of the rounds, most recent first
func (Store) ListRounds(ctx context.Context, offset int64, limit int) ([]*sieteymedio.RoundResult, error) {
	return roundResults(ListRounds(ctx, offset, limit))
}

// ListRoundsWonBy returns a page of the rounds the player won, most recent first
func (Store) ListRoundsWonBy(ctx context.Context, nickname string, offset int64, limit int) ([]*sieteymedio.RoundResult, error) {
	return roundResults(ListRoundsWonBy(ctx, nickname, offset, limit))
}

func roundResults(rounds []*Round, err error) ([]*sieteymedio.RoundResult, error) {
	if err != nil {
		return nil, err
	}

	results := make([]*sieteymedio.RoundResult, len(rounds))
	for i, round := range rounds {
		results[i] = round.Result()
	}

	return results, nil
}
