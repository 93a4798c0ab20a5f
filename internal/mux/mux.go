// Package mux serves the spectator API of a running game
package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"

	"sieteymedio/pkg/playable/sieteymedio"
	"sieteymedio/pkg/room"
)

// RoundLister returns completed rounds, most recent first
type RoundLister interface {
	ListRounds(ctx context.Context, offset int64, limit int) ([]*sieteymedio.RoundResult, error)
	ListRoundsWonBy(ctx context.Context, nickname string, offset int64, limit int) ([]*sieteymedio.RoundResult, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	room    *room.Room
	rounds  RoundLister
}

// NewMux returns a new HTTP mux
// Spectators only ever read: nothing here changes the game.
func NewMux(version string, rm *room.Room, rounds RoundLister) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		room:    rm,
		rounds:  rounds,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
	r.Methods(http.MethodGet).Path("/rounds").Handler(this.getRounds())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.room.State())
	}
}

func (m *Mux) getRounds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		var rounds []*sieteymedio.RoundResult
		if winner := r.URL.Query().Get("winner"); winner != "" {
			rounds, err = m.rounds.ListRoundsWonBy(r.Context(), winner, start, rows)
		} else {
			rounds, err = m.rounds.ListRounds(r.Context(), start, rows)
		}

		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, rounds)
	}
}
