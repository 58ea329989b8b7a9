package services

import (
	"context"
	"fmt"

	"notes-app/internal/database"
	"notes-app/internal/models"
)

type NoteService struct {
	db database.Store
}

func NewNoteService(db database.Store) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) CreateNote(ctx context.Context, req *models.CreateNoteRequest, ownerID int) (*models.Note, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("note title is required")
	}

	return s.db.CreateNote(ctx, ownerID, req.Title)
}

func (s *NoteService) ListNotes(ctx context.Context, userID int) ([]*models.Note, error) {
	return s.db.ListNotesForUser(ctx, userID)
}

// GetNote returns the note together with the caller's resolved role.
// Callers without any role get an error.
func (s *NoteService) GetNote(ctx context.Context, noteID string, userID int) (*models.NoteWithRole, error) {
	note, err := s.db.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("note not found")
	}

	role := resolveRole(note, userID)
	if role == "" {
		return nil, fmt.Errorf("forbidden - no access to this note")
	}

	return &models.NoteWithRole{Note: *note, Role: role}, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, noteID string, userID int, req *models.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.db.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("note not found")
	}

	role := resolveRole(note, userID)
	if role != models.RoleOwner && role != models.RoleEditor {
		return nil, fmt.Errorf("forbidden - not allowed to edit this note")
	}

	return s.db.UpdateNote(ctx, noteID, req.Title, req.Content)
}

func (s *NoteService) DeleteNote(ctx context.Context, noteID string, userID int) error {
	note, err := s.db.GetNoteByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("note not found")
	}

	if note.OwnerID != userID {
		return fmt.Errorf("forbidden - not the note owner")
	}

	return s.db.DeleteNote(ctx, noteID)
}

func (s *NoteService) ShareNote(ctx context.Context, noteID string, ownerID int, req *models.ShareNoteRequest) error {
	if req.Role != models.RoleEditor && req.Role != models.RoleViewer {
		return fmt.Errorf("role must be editor or viewer")
	}

	note, err := s.db.GetNoteByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("note not found")
	}

	if note.OwnerID != ownerID {
		return fmt.Errorf("forbidden - only the owner can share a note")
	}

	recipient, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("user not found")
	}

	if recipient.ID == ownerID {
		return fmt.Errorf("cannot share a note with its owner")
	}

	return s.db.UpsertShare(ctx, noteID, recipient.ID, req.Role)
}

// CanUserAccessNote reports whether the user holds any role on the note.
func (s *NoteService) CanUserAccessNote(ctx context.Context, noteID string, userID int) (bool, error) {
	note, err := s.db.GetNoteByID(ctx, noteID)
	if err != nil {
		return false, err
	}

	return resolveRole(note, userID) != "", nil
}

func resolveRole(note *models.Note, userID int) models.Role {
	if note.OwnerID == userID {
		return models.RoleOwner
	}
	for _, entry := range note.SharedWith {
		if entry.UserID == userID {
			return entry.Role
		}
	}
	return ""
}
