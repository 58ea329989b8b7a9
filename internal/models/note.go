package models

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Note struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	OwnerID    int          `json:"owner_id"`
	SharedWith []ShareEntry `json:"shared_with,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type ShareEntry struct {
	UserID int  `json:"user_id"`
	Role   Role `json:"role"`
}

type CreateNoteRequest struct {
	Title string `json:"title"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ShareNoteRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NoteWithRole is what GET /notes/{id} returns: the record plus the
// caller's resolved role on it.
type NoteWithRole struct {
	Note
	Role Role `json:"role"`
}
