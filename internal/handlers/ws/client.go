package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// sendBufferSize is the number of outbound events a client may lag behind
// before the broadcaster gives up on it
const sendBufferSize = 32

// wsClient adapts one websocket connection to the session connection
// handle. Outbound payloads go through a buffered channel drained by
// writePump, so a slow reader fails its own Send instead of stalling a
// broadcast.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Send queues one payload for delivery
func (c *wsClient) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close stops the write pump and closes the connection. Safe to call more
// than once.
func (c *wsClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	return c.conn.Close()
}

// writePump drains the send channel onto the connection. Runs in its own
// goroutine until Close or a write failure.
func (c *wsClient) writePump() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
