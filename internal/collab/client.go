package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"notes-app/internal/config"
	"notes-app/internal/models"
	"notes-app/pkg/logger"

	"github.com/gorilla/websocket"
)

// client adapts one gorilla websocket connection to the broker: the
// read pump decodes frames into the event union, the write pump drains
// the buffered send channel with deadlines and keepalive pings.
type client struct {
	id       ConnID
	conn     *websocket.Conn
	send     chan models.CollabMessage
	router   *Router
	identity models.Participant
	cfg      config.CollabConfig

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, router *Router, identity models.Participant, cfg config.CollabConfig) *client {
	return &client{
		conn:     conn,
		send:     make(chan models.CollabMessage, cfg.SendBufferSize),
		router:   router,
		identity: identity,
		cfg:      cfg,
	}
}

// Send queues one frame without blocking. A full buffer drops the frame
// for this recipient only; a closed client rejects it.
func (c *client) Send(msg models.CollabMessage) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return fmt.Errorf("connection is closed")
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return fmt.Errorf("send buffer full")
	}
}

func (c *client) readPump() {
	defer c.teardown()

	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket error on %s: %v", c.id, err)
			}
			break
		}

		ev, err := DecodeEvent(data, c.identity)
		if err != nil {
			// Malformed frames are dropped, never fatal.
			logger.Debug("dropping frame from %s: %v", c.id, err)
			continue
		}

		c.router.Handle(c.id, ev)
	}
}

func (c *client) writePump() {
	pingPeriod := c.cfg.PongTimeout * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				logger.Error("Error marshaling %s frame: %v", msg.Type, err)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug("Write error on %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// teardown runs once per connection, however it dies, and feeds exactly
// one Disconnected event into the router so presence never leaks a gone
// connection.
func (c *client) teardown() {
	c.closeOnce.Do(func() {
		c.router.Handle(c.id, Disconnected{})

		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		close(c.send)
		c.conn.Close()
	})
}
