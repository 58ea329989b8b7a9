package collab

import (
	"encoding/json"
	"fmt"

	"notes-app/internal/models"
)

// ConnID identifies one live connection for the lifetime of the process.
type ConnID string

// RoomID is the document identifier a broadcast group is keyed by. It is
// supplied by the client and not validated against the note store here.
type RoomID string

// Event is the typed union of everything a connection can feed into the
// router. Keeping dispatch behind a single Handle call makes the routing
// logic testable without a network transport.
type Event interface {
	isEvent()
}

type JoinRoom struct {
	Room     RoomID
	Identity models.Participant
}

type TitleChanged struct {
	Room  RoomID
	Title string
}

type ContentChanged struct {
	Room    RoomID
	Content string
}

type TypingNotice struct {
	Room        RoomID
	DisplayName string
}

// Disconnected is emitted exactly once per connection when its transport
// goes away, planned or abrupt.
type Disconnected struct{}

func (JoinRoom) isEvent()       {}
func (TitleChanged) isEvent()   {}
func (ContentChanged) isEvent() {}
func (TypingNotice) isEvent()   {}
func (Disconnected) isEvent()   {}

// DefaultDisplayName is used when a join frame carries no identity name.
const DefaultDisplayName = "Guest"

// DecodeEvent parses one inbound frame into the event union. fallback is
// the identity to presence-register when the frame carries none (the
// handler passes the identity resolved from the caller's token).
func DecodeEvent(data []byte, fallback models.Participant) (Event, error) {
	var msg models.CollabMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	if msg.RoomID == "" {
		return nil, fmt.Errorf("frame %q missing roomId", msg.Type)
	}

	switch msg.Type {
	case models.CollabTypeJoin:
		identity := fallback
		if msg.Identity != nil {
			identity = *msg.Identity
		}
		if identity.Name == "" {
			identity.Name = DefaultDisplayName
		}
		return JoinRoom{Room: RoomID(msg.RoomID), Identity: identity}, nil

	case models.CollabTypeTitleChanged:
		return TitleChanged{Room: RoomID(msg.RoomID), Title: msg.Title}, nil

	case models.CollabTypeNoteChanged:
		return ContentChanged{Room: RoomID(msg.RoomID), Content: msg.Content}, nil

	case models.CollabTypeTyping:
		name := msg.DisplayName
		if name == "" {
			name = fallback.Name
		}
		return TypingNotice{Room: RoomID(msg.RoomID), DisplayName: name}, nil

	default:
		return nil, fmt.Errorf("unknown frame type %q", msg.Type)
	}
}
