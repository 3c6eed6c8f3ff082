package tcpserver

import (
	"net"
	"sync"
	"time"
)

// defaultWriteTimeout bounds a single payload write so one stalled client
// cannot block a broadcast for long
const defaultWriteTimeout = 10 * time.Second

// client wraps a TCP connection as a session connection handle. Broadcasts
// and per-player sends come from different goroutines, so writes are
// serialized by a mutex to keep newline-delimited records intact.
type client struct {
	conn net.Conn

	mu sync.Mutex
}

func newClient(conn net.Conn) *client {
	return &client{
		conn: conn,
	}
}

// Send writes one newline-terminated payload to the connection
func (c *client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout)); err != nil {
		return err
	}

	_, err := c.conn.Write(data)
	return err
}

// Close closes the underlying connection. Closing twice is harmless.
func (c *client) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the peer address for logging
func (c *client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
