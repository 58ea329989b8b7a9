package collab

import (
	"testing"

	"notes-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallback = models.Participant{Name: "Ada", Contact: "ada@example.com"}

func TestDecodeEvent_JoinWithIdentity(t *testing.T) {
	data := []byte(`{"type":"join","roomId":"doc1","identity":{"name":"Bea","contact":"bea@example.com"}}`)

	ev, err := DecodeEvent(data, fallback)
	require.NoError(t, err)

	join, ok := ev.(JoinRoom)
	require.True(t, ok)
	assert.Equal(t, RoomID("doc1"), join.Room)
	assert.Equal(t, "Bea", join.Identity.Name)
	assert.Equal(t, "bea@example.com", join.Identity.Contact)
}

func TestDecodeEvent_JoinFallsBackToTokenIdentity(t *testing.T) {
	data := []byte(`{"type":"join","roomId":"doc1"}`)

	ev, err := DecodeEvent(data, fallback)
	require.NoError(t, err)

	join := ev.(JoinRoom)
	assert.Equal(t, fallback, join.Identity)
}

func TestDecodeEvent_JoinDefaultsToGuest(t *testing.T) {
	data := []byte(`{"type":"join","roomId":"doc1","identity":{"contact":"x@example.com"}}`)

	ev, err := DecodeEvent(data, models.Participant{})
	require.NoError(t, err)

	join := ev.(JoinRoom)
	assert.Equal(t, DefaultDisplayName, join.Identity.Name)
	assert.Equal(t, "x@example.com", join.Identity.Contact)
}

func TestDecodeEvent_EditEvents(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"title-changed","roomId":"doc1","title":"Groceries"}`), fallback)
	require.NoError(t, err)
	assert.Equal(t, TitleChanged{Room: "doc1", Title: "Groceries"}, ev)

	ev, err = DecodeEvent([]byte(`{"type":"note-changed","roomId":"doc1","content":"<p>hi</p>"}`), fallback)
	require.NoError(t, err)
	assert.Equal(t, ContentChanged{Room: "doc1", Content: "<p>hi</p>"}, ev)

	ev, err = DecodeEvent([]byte(`{"type":"typing","roomId":"doc1","displayName":"Bea"}`), fallback)
	require.NoError(t, err)
	assert.Equal(t, TypingNotice{Room: "doc1", DisplayName: "Bea"}, ev)
}

func TestDecodeEvent_TypingWithoutNameUsesFallback(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"typing","roomId":"doc1"}`), fallback)
	require.NoError(t, err)
	assert.Equal(t, TypingNotice{Room: "doc1", DisplayName: "Ada"}, ev)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := DecodeEvent([]byte(`{not json`), fallback)
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"type":"join"}`), fallback)
	assert.Error(t, err, "frames without a roomId are rejected")

	_, err = DecodeEvent([]byte(`{"type":"self-destruct","roomId":"doc1"}`), fallback)
	assert.Error(t, err, "unknown frame types are rejected")
}
