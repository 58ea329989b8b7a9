package database

import (
	"context"

	"notes-app/internal/models"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type NoteRepository interface {
	CreateNote(ctx context.Context, ownerID int, title string) (*models.Note, error)
	GetNoteByID(ctx context.Context, id string) (*models.Note, error)
	ListNotesForUser(ctx context.Context, userID int) ([]*models.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type ShareRepository interface {
	UpsertShare(ctx context.Context, noteID string, userID int, role models.Role) error
	GetShares(ctx context.Context, noteID string) ([]models.ShareEntry, error)
}

type Store interface {
	UserRepository
	NoteRepository
	ShareRepository
	Close() error
}
