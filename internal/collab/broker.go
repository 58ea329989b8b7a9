package collab

import (
	"notes-app/internal/config"
	"notes-app/internal/models"

	"github.com/gorilla/websocket"
)

// Broker owns the connection registry, the presence table, and the
// router for one process. It is an ordinary instance rather than a
// package global, so tests can run independent brokers side by side.
type Broker struct {
	registry *Registry
	presence *Table
	router   *Router
	cfg      config.CollabConfig
}

func NewBroker(cfg config.CollabConfig) *Broker {
	registry := NewRegistry()
	presence := NewTable()
	return &Broker{
		registry: registry,
		presence: presence,
		router:   NewRouter(registry, presence),
		cfg:      cfg,
	}
}

// Router exposes the dispatch entry point, mainly for tests that drive
// events without a websocket.
func (b *Broker) Router() *Router {
	return b.router
}

// Presence exposes read access to the presence table for the HTTP layer
// (e.g. reporting who is editing a note).
func (b *Broker) Presence() *Table {
	return b.presence
}

// HandleConnection wires an upgraded websocket into the broker and
// starts its pumps. identity is the participant resolved from the
// caller's token, used when join frames carry no identity of their own.
func (b *Broker) HandleConnection(conn *websocket.Conn, identity models.Participant) {
	client := newClient(conn, b.router, identity, b.cfg)
	client.id = b.registry.Register(client)

	go client.writePump()
	go client.readPump()
}
