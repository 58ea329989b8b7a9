package models

// Participant is the presence record broadcast in user-list rosters.
type Participant struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type CollabMessageType string

const (
	// client -> server
	CollabTypeJoin         CollabMessageType = "join"
	CollabTypeTitleChanged CollabMessageType = "title-changed"
	CollabTypeNoteChanged  CollabMessageType = "note-changed"
	CollabTypeTyping       CollabMessageType = "typing"

	// server -> client
	CollabTypeUserList    CollabMessageType = "user-list"
	CollabTypeTitleUpdate CollabMessageType = "title-update"
	CollabTypeNoteUpdate  CollabMessageType = "note-update"
	CollabTypeUserTyping  CollabMessageType = "user-typing"
)

// CollabMessage is the JSON envelope for every frame on the
// collaboration socket, in both directions.
type CollabMessage struct {
	Type        CollabMessageType `json:"type"`
	RoomID      string            `json:"roomId,omitempty"`
	Identity    *Participant      `json:"identity,omitempty"`
	Title       string            `json:"title,omitempty"`
	Content     string            `json:"content,omitempty"`
	DisplayName string            `json:"displayName,omitempty"`
	Users       []Participant     `json:"users,omitempty"`
}
