package collab

import (
	"testing"

	"notes-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nullSender satisfies Sender for registry tests that never deliver.
type nullSender struct{}

func (nullSender) Send(models.CollabMessage) error { return nil }

func TestRegistry_RegisterAssignsUniqueIDs(t *testing.T) {
	reg := NewRegistry()

	a := reg.Register(nullSender{})
	b := reg.Register(nullSender{})

	assert.NotEqual(t, a, b)

	_, ok := reg.Sender(a)
	assert.True(t, ok)
	_, ok = reg.Sender(b)
	assert.True(t, ok)
}

func TestRegistry_JoinedRooms(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register(nullSender{})

	assert.Empty(t, reg.JoinedRooms(id))
	assert.Empty(t, reg.JoinedRooms("no-such-connection"))

	reg.MarkJoined(id, "doc1")
	reg.MarkJoined(id, "doc2")
	reg.MarkJoined(id, "doc1") // repeat join is a no-op here

	assert.ElementsMatch(t, []RoomID{"doc1", "doc2"}, reg.JoinedRooms(id))
}

func TestRegistry_DeregisterReturnsAffectedRooms(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register(nullSender{})
	reg.MarkJoined(id, "doc1")
	reg.MarkJoined(id, "doc2")

	rooms := reg.Deregister(id)
	assert.ElementsMatch(t, []RoomID{"doc1", "doc2"}, rooms)

	_, ok := reg.Sender(id)
	require.False(t, ok, "sender must be gone after deregister")
}

func TestRegistry_DeregisterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register(nullSender{})
	reg.MarkJoined(id, "doc1")

	assert.NotEmpty(t, reg.Deregister(id))
	assert.Empty(t, reg.Deregister(id))
	assert.Empty(t, reg.Deregister("never-registered"))
}

func TestRegistry_MarkJoinedAfterDeregisterIsIgnored(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register(nullSender{})
	reg.Deregister(id)

	reg.MarkJoined(id, "doc1")
	assert.Empty(t, reg.JoinedRooms(id))
}
