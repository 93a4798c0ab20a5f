// Package room shares a running game with spectators connected over websockets
package room

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"sieteymedio/pkg/playable"
	"sieteymedio/pkg/playable/sieteymedio"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateRoundEnded
)

// Room watches a game and forwards what happens to the connected clients
// It is a sieteymedio.Display and a sieteymedio.Recorder. The game calls it synchronously, so those calls only
// store the state and wake up the run loop, which does the sending.
type Room struct {
	name   string
	logger logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	mu          sync.RWMutex
	table       *sieteymedio.PublicView
	logMessages []*playable.LogMessage
	pending     []*playable.LogMessage
	lastRound   *sieteymedio.RoundResult

	stateChanged chan state
	close        chan bool
	closeOnce    sync.Once
}

// NewRoom returns a new room for the game
func NewRoom(name string, logger logrus.FieldLogger) *Room {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Room{
		name:         name,
		logger:       logger.WithField("room", name),
		clients:      make(map[*Client]bool),
		logMessages:  make([]*playable.LogMessage, 0),
		stateChanged: make(chan state, 256),
		close:        make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (r *Room) Clients() []*Client {
	r.lock.RLock()
	defer r.lock.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (r *Room) StartShift() {
	go r.runLoop()
}

// ReasonGameOver is sent to the spectators when the room closes
const ReasonGameOver = "game over"

// EndShift stops the run loop and disconnects the spectators
func (r *Room) EndShift() {
	r.closeOnce.Do(func() {
		close(r.close)

		for _, client := range r.Clients() {
			client.CloseWith(ReasonGameOver)
		}
	})
}

func (r *Room) runLoop() {
	r.logger.Debug("creating room run loop")
	for {
		select {
		case s := <-r.stateChanged:
			switch s {
			case stateClientEvent, stateGameEvent:
				r.sendState()
			case stateRoundEnded:
				r.sendRoundEnded()
			}
		case <-r.close:
			r.logger.Debug("terminating room run loop")
			return
		}
	}
}

// signal wakes up the run loop
// If the loop is behind, the event is dropped: the next state sent covers it.
func (r *Room) signal(s state) {
	select {
	case r.stateChanged <- s:
	default:
		r.logger.WithField("state", s).Warn("room is not keeping up, dropping event")
	}
}

// AddClient adds a client
// This method must return quickly
func (r *Room) AddClient(client *Client) {
	r.lock.Lock()
	client.room = r
	r.clients[client] = true
	r.lock.Unlock()

	r.signal(stateClientEvent)
}

// RemoveClient removes a client
// This method must return quickly
func (r *Room) RemoveClient(client *Client) (lastClient bool) {
	r.lock.Lock()
	delete(r.clients, client)
	nClients := len(r.clients)
	r.lock.Unlock()

	return nClients == 0
}

// Render keeps the public view. The private view is never shared with spectators
func (r *Room) Render(public sieteymedio.PublicView, _ sieteymedio.PrivateView) {
	r.mu.Lock()
	r.table = &public
	r.mu.Unlock()

	r.signal(stateGameEvent)
}

// Notify keeps the log messages
func (r *Room) Notify(messages ...*playable.LogMessage) {
	r.mu.Lock()
	r.addLogMessages(messages)
	r.pending = append(r.pending, messages...)
	r.mu.Unlock()

	r.signal(stateGameEvent)
}

// RecordRound keeps the result of the round
func (r *Room) RecordRound(_ context.Context, result *sieteymedio.RoundResult) error {
	r.mu.Lock()
	r.lastRound = result
	r.mu.Unlock()

	r.signal(stateRoundEnded)
	return nil
}

// State returns what a spectator joining now would see
func (r *Room) State() *State {
	spectators := len(r.Clients())

	r.mu.RLock()
	defer r.mu.RUnlock()

	return &State{
		Game:       r.name,
		Table:      r.table,
		Log:        append([]*playable.LogMessage{}, r.logMessages...),
		LastRound:  r.lastRound,
		Spectators: spectators,
	}
}

// NOTE: must only be called from the run loop
func (r *Room) sendState() {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	resp := &Response{Key: KeyState, Data: r.State()}
	for _, client := range r.Clients() {
		if !client.Send(resp) {
			r.logger.WithField("client", client.String()).Warn("client is not keeping up")
			continue
		}

		if len(pending) > 0 {
			client.Send(&Response{Key: KeyLog, Data: pending})
		}
	}
}

// NOTE: must only be called from the run loop
func (r *Room) sendRoundEnded() {
	r.mu.RLock()
	result := r.lastRound
	r.mu.RUnlock()

	for _, client := range r.Clients() {
		client.Send(&Response{Key: KeyRoundEnded, Data: result})
	}
}
