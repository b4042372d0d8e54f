package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 10 * 1024
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 32 * 1024,
	WriteBufferPool: &sync.Pool{},
	// viewers connect from LAN addresses or file:// pages
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connection is a server-side socket which only pushes binary messages.
// Inbound data is drained in the background to process control frames
// and surface peer disconnects through Done.
type Connection struct {
	conn deadlinedConn
	done chan struct{}
	once sync.Once
}

// Connect upgrades an HTTP request to a websocket connection.
func Connect(w http.ResponseWriter, r *http.Request) (*Connection, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	c := &Connection{
		conn: deadlinedConn{sock: conn, wt: writeWait},
		done: make(chan struct{}),
	}
	go c.reader()
	return c, nil
}

// reader serializes all websocket reads until the peer goes away.
// Blocking, runs as a goroutine.
func (c *Connection) reader() {
	c.conn.sock.SetReadLimit(maxMessageSize)
	for {
		if _, err := c.conn.read(); err != nil {
			break
		}
	}
	c.teardown()
}

// Done is closed once the peer has disconnected or Close was called.
func (c *Connection) Done() <-chan struct{} { return c.done }

// WriteBinary pushes one binary message with a write deadline.
func (c *Connection) WriteBinary(data []byte) error {
	return c.conn.write(websocket.BinaryMessage, data)
}

// Close notifies the peer and tears the socket down.
func (c *Connection) Close() {
	_ = c.conn.write(websocket.CloseMessage, []byte{})
	c.teardown()
}

func (c *Connection) teardown() {
	c.once.Do(func() {
		_ = c.conn.close()
		close(c.done)
	})
}
