package collab

import (
	"notes-app/internal/models"
	"notes-app/pkg/logger"
)

// Router validates one inbound event and fans it out to the right room.
// Edit and typing events never echo back to their sender; roster
// broadcasts include the joiner, who needs to see itself listed.
type Router struct {
	registry *Registry
	presence *Table
}

func NewRouter(registry *Registry, presence *Table) *Router {
	return &Router{registry: registry, presence: presence}
}

// Handle dispatches one event from connection `from`. Nothing here is
// fatal: every failure mode degrades to "this event had no effect".
func (rt *Router) Handle(from ConnID, ev Event) {
	switch e := ev.(type) {
	case JoinRoom:
		rt.handleJoin(from, e)

	case TitleChanged:
		rt.relay(from, e.Room, models.CollabMessage{
			Type:  models.CollabTypeTitleUpdate,
			Title: e.Title,
		})

	case ContentChanged:
		rt.relay(from, e.Room, models.CollabMessage{
			Type:    models.CollabTypeNoteUpdate,
			Content: e.Content,
		})

	case TypingNotice:
		rt.relay(from, e.Room, models.CollabMessage{
			Type:        models.CollabTypeUserTyping,
			DisplayName: e.DisplayName,
		})

	case Disconnected:
		rt.handleDisconnect(from)
	}
}

// handleJoin is idempotent: re-joining overwrites the identity and still
// fires one roster broadcast, so a client can re-announce itself.
func (rt *Router) handleJoin(from ConnID, e JoinRoom) {
	rt.registry.MarkJoined(from, e.Room)
	rt.presence.Join(e.Room, from, e.Identity)
	rt.broadcastRoster(e.Room)
}

func (rt *Router) handleDisconnect(from ConnID) {
	for _, room := range rt.registry.Deregister(from) {
		rt.presence.Leave(room, from)
		rt.broadcastRoster(room)
	}
}

// relay sends msg verbatim to every room member except the sender.
// Events for rooms with no members are silently dropped.
func (rt *Router) relay(from ConnID, room RoomID, msg models.CollabMessage) {
	conns, _ := rt.presence.Snapshot(room)
	for _, conn := range conns {
		if conn == from {
			continue
		}
		rt.send(conn, msg)
	}
}

// broadcastRoster pushes the current user-list to every member of the
// room. A just-emptied room simply has no targets.
func (rt *Router) broadcastRoster(room RoomID) {
	conns, users := rt.presence.Snapshot(room)
	msg := models.CollabMessage{
		Type:  models.CollabTypeUserList,
		Users: users,
	}
	for _, conn := range conns {
		rt.send(conn, msg)
	}
}

// send delivers to one recipient, looked up by id at send time. A
// missing or failing recipient is skipped; it never blocks the rest of
// the fan-out.
func (rt *Router) send(conn ConnID, msg models.CollabMessage) {
	sender, ok := rt.registry.Sender(conn)
	if !ok {
		return
	}
	if err := sender.Send(msg); err != nil {
		logger.Debug("dropping %s frame for connection %s: %v", msg.Type, conn, err)
	}
}
