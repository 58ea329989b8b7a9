package collab

import (
	"sync"

	"notes-app/internal/models"

	"github.com/google/uuid"
)

// Sender is the outbound half of a connection. Implementations must not
// block: a slow recipient drops frames instead of stalling the caller.
type Sender interface {
	Send(msg models.CollabMessage) error
}

// Registry tracks every live connection and the rooms it has joined.
// Recipients are always looked up here by id at send time rather than
// cached, so a broadcast never writes into an already-reclaimed
// connection.
type Registry struct {
	mu      sync.RWMutex
	senders map[ConnID]Sender
	rooms   map[ConnID]map[RoomID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		senders: make(map[ConnID]Sender),
		rooms:   make(map[ConnID]map[RoomID]struct{}),
	}
}

// Register assigns a fresh id to the connection and stores its sender.
func (r *Registry) Register(s Sender) ConnID {
	id := ConnID(uuid.NewString())

	r.mu.Lock()
	r.senders[id] = s
	r.rooms[id] = make(map[RoomID]struct{})
	r.mu.Unlock()

	return id
}

// Sender returns the outbound half for id, if the connection is still
// registered.
func (r *Registry) Sender(id ConnID) (Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.senders[id]
	return s, ok
}

// MarkJoined records that the connection is now a member of room.
// Unknown ids are ignored; the connection already disconnected.
func (r *Registry) MarkJoined(id ConnID, room RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if joined, ok := r.rooms[id]; ok {
		joined[room] = struct{}{}
	}
}

// JoinedRooms returns the rooms the connection is a member of, empty for
// unknown ids.
func (r *Registry) JoinedRooms(id ConnID) []RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joined, ok := r.rooms[id]
	if !ok {
		return nil
	}

	rooms := make([]RoomID, 0, len(joined))
	for room := range joined {
		rooms = append(rooms, room)
	}
	return rooms
}

// Deregister removes the connection and returns the rooms that lost a
// member, so the caller can rebroadcast their rosters. Deregistering an
// unknown or already-removed id returns nil rather than failing.
func (r *Registry) Deregister(id ConnID) []RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined, ok := r.rooms[id]
	if !ok {
		return nil
	}

	delete(r.senders, id)
	delete(r.rooms, id)

	rooms := make([]RoomID, 0, len(joined))
	for room := range joined {
		rooms = append(rooms, room)
	}
	return rooms
}
