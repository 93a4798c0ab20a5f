package room

import (
	"github.com/gorilla/websocket"
)

// Client is a spectator connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	room *Room

	remoteAddr string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		send:       make(chan interface{}, 256),
		Close:      make(chan string, 1),
		Conn:       conn,
		remoteAddr: remoteAddr,
	}
}

// Send send a message to the web client
// Returns false if the client is not keeping up and the message was dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// CloseWith asks the write loop to close the connection with the reason
func (c *Client) CloseWith(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return c.remoteAddr
}
