package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"notes-app/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory database.Store for service tests.
type fakeStore struct {
	users  map[int]*models.User
	notes  map[string]*models.Note
	shares map[string][]models.ShareEntry
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[int]*models.User),
		notes:  make(map[string]*models.Note),
		shares: make(map[string][]models.ShareEntry),
		nextID: 1,
	}
}

func (f *fakeStore) addUser(name, email string) *models.User {
	user := &models.User{ID: f.nextID, Name: name, Email: email, CreatedAt: time.Now()}
	f.nextID++
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("no rows")
}

func (f *fakeStore) CreateUser(_ context.Context, req *models.RegisterRequest) (*models.User, error) {
	return f.addUser(req.Name, req.Email), nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return u, nil
}

func (f *fakeStore) CreateNote(_ context.Context, ownerID int, title string) (*models.Note, error) {
	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.notes[note.ID] = note
	return note, nil
}

func (f *fakeStore) GetNoteByID(_ context.Context, id string) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	copied := *note
	copied.SharedWith = f.shares[id]
	return &copied, nil
}

func (f *fakeStore) ListNotesForUser(_ context.Context, userID int) ([]*models.Note, error) {
	var notes []*models.Note
	for id, note := range f.notes {
		if note.OwnerID == userID {
			notes = append(notes, note)
			continue
		}
		for _, entry := range f.shares[id] {
			if entry.UserID == userID {
				notes = append(notes, note)
				break
			}
		}
	}
	return notes, nil
}

func (f *fakeStore) UpdateNote(_ context.Context, id, title, content string) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now()
	return note, nil
}

func (f *fakeStore) DeleteNote(_ context.Context, id string) error {
	delete(f.notes, id)
	delete(f.shares, id)
	return nil
}

func (f *fakeStore) UpsertShare(_ context.Context, noteID string, userID int, role models.Role) error {
	entries := f.shares[noteID]
	for i, entry := range entries {
		if entry.UserID == userID {
			entries[i].Role = role
			return nil
		}
	}
	f.shares[noteID] = append(entries, models.ShareEntry{UserID: userID, Role: role})
	return nil
}

func (f *fakeStore) GetShares(_ context.Context, noteID string) ([]models.ShareEntry, error) {
	return f.shares[noteID], nil
}

func (f *fakeStore) Close() error { return nil }

func TestNoteService_CreateRequiresTitle(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("Ada", "ada@example.com")
	svc := NewNoteService(store)

	_, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{}, owner.ID)
	assert.Error(t, err)

	note, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{Title: "Plans"}, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plans", note.Title)
	assert.Equal(t, owner.ID, note.OwnerID)
}

func TestNoteService_GetNoteResolvesRole(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("Ada", "ada@example.com")
	editor := store.addUser("Bea", "bea@example.com")
	stranger := store.addUser("Eve", "eve@example.com")
	svc := NewNoteService(store)

	note, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{Title: "Plans"}, owner.ID)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShare(context.Background(), note.ID, editor.ID, models.RoleEditor))

	got, err := svc.GetNote(context.Background(), note.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, got.Role)

	got, err = svc.GetNote(context.Background(), note.ID, editor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, got.Role)

	_, err = svc.GetNote(context.Background(), note.ID, stranger.ID)
	assert.Error(t, err, "users without a role are denied")
}

func TestNoteService_UpdatePermissions(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("Ada", "ada@example.com")
	editor := store.addUser("Bea", "bea@example.com")
	viewer := store.addUser("Cyd", "cyd@example.com")
	svc := NewNoteService(store)

	note, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{Title: "Plans"}, owner.ID)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShare(context.Background(), note.ID, editor.ID, models.RoleEditor))
	require.NoError(t, store.UpsertShare(context.Background(), note.ID, viewer.ID, models.RoleViewer))

	req := &models.UpdateNoteRequest{Title: "Plans v2", Content: "<p>hi</p>"}

	updated, err := svc.UpdateNote(context.Background(), note.ID, editor.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", updated.Content)

	_, err = svc.UpdateNote(context.Background(), note.ID, viewer.ID, req)
	assert.Error(t, err, "viewers cannot edit")
}

func TestNoteService_DeleteIsOwnerOnly(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("Ada", "ada@example.com")
	editor := store.addUser("Bea", "bea@example.com")
	svc := NewNoteService(store)

	note, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{Title: "Plans"}, owner.ID)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShare(context.Background(), note.ID, editor.ID, models.RoleEditor))

	assert.Error(t, svc.DeleteNote(context.Background(), note.ID, editor.ID))
	require.NoError(t, svc.DeleteNote(context.Background(), note.ID, owner.ID))

	_, err = svc.GetNote(context.Background(), note.ID, owner.ID)
	assert.Error(t, err)
}

func TestNoteService_ShareNote(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("Ada", "ada@example.com")
	friend := store.addUser("Bea", "bea@example.com")
	svc := NewNoteService(store)

	note, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{Title: "Plans"}, owner.ID)
	require.NoError(t, err)

	err = svc.ShareNote(context.Background(), note.ID, owner.ID, &models.ShareNoteRequest{Email: "bea@example.com", Role: models.RoleViewer})
	require.NoError(t, err)

	got, err := svc.GetNote(context.Background(), note.ID, friend.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, got.Role)

	// Re-sharing the same user updates the role.
	err = svc.ShareNote(context.Background(), note.ID, owner.ID, &models.ShareNoteRequest{Email: "bea@example.com", Role: models.RoleEditor})
	require.NoError(t, err)
	got, err = svc.GetNote(context.Background(), note.ID, friend.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, got.Role)

	// Only the owner can share, roles are validated, self-share is rejected.
	assert.Error(t, svc.ShareNote(context.Background(), note.ID, friend.ID, &models.ShareNoteRequest{Email: "ada@example.com", Role: models.RoleViewer}))
	assert.Error(t, svc.ShareNote(context.Background(), note.ID, owner.ID, &models.ShareNoteRequest{Email: "bea@example.com", Role: "admin"}))
	assert.Error(t, svc.ShareNote(context.Background(), note.ID, owner.ID, &models.ShareNoteRequest{Email: "ada@example.com", Role: models.RoleViewer}))
}

func TestNoteService_CanUserAccessNote(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("Ada", "ada@example.com")
	stranger := store.addUser("Eve", "eve@example.com")
	svc := NewNoteService(store)

	note, err := svc.CreateNote(context.Background(), &models.CreateNoteRequest{Title: "Plans"}, owner.ID)
	require.NoError(t, err)

	ok, err := svc.CanUserAccessNote(context.Background(), note.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanUserAccessNote(context.Background(), note.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
