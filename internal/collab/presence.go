package collab

import (
	"sync"

	"notes-app/internal/models"
)

// Table is the room presence table: per room, which connection carries
// which participant identity. Rooms are created lazily on first join and
// dropped eagerly when their last member leaves. Each room has its own
// lock, so churn in a busy room never blocks an idle one.
type Table struct {
	mu    sync.RWMutex
	rooms map[RoomID]*roomState
}

type roomState struct {
	mu      sync.RWMutex
	members map[ConnID]models.Participant
}

func NewTable() *Table {
	return &Table{rooms: make(map[RoomID]*roomState)}
}

// Join inserts or replaces the participant record for (room, conn).
// Rebroadcasting the roster is the router's job, not the table's.
func (t *Table) Join(room RoomID, conn ConnID, p models.Participant) {
	t.mu.Lock()
	state, ok := t.rooms[room]
	if !ok {
		state = &roomState{members: make(map[ConnID]models.Participant)}
		t.rooms[room] = state
	}
	// Take the room lock before releasing the table lock, so a
	// concurrent Leave cannot delete the room out from under us.
	state.mu.Lock()
	t.mu.Unlock()

	state.members[conn] = p
	state.mu.Unlock()
}

// Leave removes the entry and reports whether one existed. An emptied
// room is deleted from the table.
func (t *Table) Leave(room RoomID, conn ConnID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.rooms[room]
	if !ok {
		return false
	}

	state.mu.Lock()
	_, existed := state.members[conn]
	delete(state.members, conn)
	empty := len(state.members) == 0
	state.mu.Unlock()

	if empty {
		delete(t.rooms, room)
	}
	return existed
}

// Participants returns a consistent snapshot of the roster. Order is
// unspecified; the roster is a set.
func (t *Table) Participants(room RoomID) []models.Participant {
	_, users := t.Snapshot(room)
	return users
}

// Snapshot returns the member connection ids and their identities taken
// under one lock, so a roster broadcast never sees a torn view.
func (t *Table) Snapshot(room RoomID) ([]ConnID, []models.Participant) {
	t.mu.RLock()
	state, ok := t.rooms[room]
	t.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	state.mu.RLock()
	defer state.mu.RUnlock()

	conns := make([]ConnID, 0, len(state.members))
	users := make([]models.Participant, 0, len(state.members))
	for conn, p := range state.members {
		conns = append(conns, conn)
		users = append(users, p)
	}
	return conns, users
}

func (t *Table) HasRoom(room RoomID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.rooms[room]
	return ok
}
