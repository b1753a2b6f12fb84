package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"marketplace/internal/core/domain/model/user"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 32
)

// connection is one live websocket subscriber. The rooms set is owned by
// the hub and must only be touched under the hub's lock.
type connection struct {
	principal user.Principal
	ws        *websocket.Conn
	rooms     map[string]struct{}

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newConnection(principal user.Principal, ws *websocket.Conn) *connection {
	return &connection{
		principal: principal,
		ws:        ws,
		rooms:     make(map[string]struct{}),
		send:      make(chan []byte, sendQueueSize),
	}
}

// enqueue queues a frame for the write pump. It never blocks; a full
// queue or a closed connection reports false.
func (c *connection) enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close marks the connection closed and releases the write pump.
// Safe to call more than once.
func (c *connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}

// writePump drains the send queue into the socket and keeps the
// connection alive with periodic pings. It exits when the send queue
// is closed or a write fails.
func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
