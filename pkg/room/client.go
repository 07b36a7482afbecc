package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a viewer connected to a table via websocket. A PlayerID of zero
// is a spectator.
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// PlayerID identifies the viewer for hole-card visibility
	PlayerID int64

	send  chan interface{}
	close chan string
	table *Table
}

// NewClient returns a new client for the given connection
func NewClient(conn *websocket.Conn, playerID int64) *Client {
	return &Client{
		Conn:     conn,
		PlayerID: playerID,
		send:     make(chan interface{}, 256),
		close:    make(chan string, 1),
	}
}

// Send queues a message for the client. Returns false if the client's
// buffer is full.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns the channel the websocket writer drains
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// CloseChan carries the reason the server is closing the connection
func (c *Client) CloseChan() chan string {
	return c.close
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	if c.table != nil {
		return fmt.Sprintf("%d:%s", c.PlayerID, c.table.UUID)
	}

	return fmt.Sprintf("%d", c.PlayerID)
}
