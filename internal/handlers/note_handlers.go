package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"notes-app/internal/auth"
	"notes-app/internal/models"
	"notes-app/internal/services"
	"notes-app/pkg/logger"
)

type NoteHandlers struct {
	noteService *services.NoteService
	authService *auth.Service
}

func NewNoteHandlers(noteService *services.NoteService, authService *auth.Service) *NoteHandlers {
	return &NoteHandlers{
		noteService: noteService,
		authService: authService,
	}
}

func (h *NoteHandlers) CreateNote(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserFromToken(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), &req, user.ID)
	if err != nil {
		logger.Error("Create note error: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(note)
}

func (h *NoteHandlers) ListNotes(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserFromToken(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	notes, err := h.noteService.ListNotes(r.Context(), user.ID)
	if err != nil {
		logger.Error("List notes error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notes)
}

func (h *NoteHandlers) GetNote(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserFromToken(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID, err := getNoteIDFromPath(r)
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.GetNote(r.Context(), noteID, user.ID)
	if err != nil {
		logger.Error("Get note error: %v", err)
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(note)
}

func (h *NoteHandlers) UpdateNote(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserFromToken(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID, err := getNoteIDFromPath(r)
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), noteID, user.ID, &req)
	if err != nil {
		logger.Error("Update note error: %v", err)
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(note)
}

func (h *NoteHandlers) DeleteNote(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserFromToken(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID, err := getNoteIDFromPath(r)
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), noteID, user.ID); err != nil {
		logger.Error("Delete note error: %v", err)
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("note deleted successfully"))
}

func (h *NoteHandlers) ShareNote(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserFromToken(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID, err := getNoteIDFromPath(r)
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	var req models.ShareNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.noteService.ShareNote(r.Context(), noteID, user.ID, &req); err != nil {
		logger.Error("Share note error: %v", err)
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("note shared successfully"))
}

func (h *NoteHandlers) getUserFromToken(r *http.Request) (*models.User, error) {
	return userFromRequest(r, h.authService)
}

// userFromRequest resolves the caller from a bearer token, falling back
// to the token query parameter (the websocket entry point cannot set
// headers from the browser).
func userFromRequest(r *http.Request, authService *auth.Service) (*models.User, error) {
	tokenStr := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenStr == "" {
		tokenStr = r.URL.Query().Get("token")
	}
	if tokenStr == "" {
		return nil, fmt.Errorf("missing token")
	}

	return authService.GetUserFromToken(r.Context(), tokenStr)
}

func getNoteIDFromPath(r *http.Request) (string, error) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", fmt.Errorf("invalid path")
	}

	return parts[2], nil
}
