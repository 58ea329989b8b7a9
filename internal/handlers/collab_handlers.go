package handlers

import (
	"encoding/json"
	"net/http"

	"notes-app/internal/auth"
	"notes-app/internal/collab"
	"notes-app/internal/models"
	"notes-app/pkg/logger"

	"github.com/gorilla/websocket"
)

type CollabHandlers struct {
	authService *auth.Service
	broker      *collab.Broker
	upgrader    websocket.Upgrader
}

func NewCollabHandlers(authService *auth.Service, broker *collab.Broker) *CollabHandlers {
	return &CollabHandlers{
		authService: authService,
		broker:      broker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // Configure for production
		},
	}
}

// HandleWebSocket authenticates the caller, upgrades the connection, and
// hands it to the broker. Which note rooms the connection then joins is
// the client's business; the broker performs no per-room authorization.
func (h *CollabHandlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	user, err := userFromRequest(r, h.authService)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Upgrade error: %v", err)
		return
	}

	h.broker.HandleConnection(conn, models.Participant{
		Name:    user.Name,
		Contact: user.Email,
	})
}

// ActiveCollaborators reports who is currently editing a note, straight
// from the broker's presence table.
func (h *CollabHandlers) ActiveCollaborators(w http.ResponseWriter, r *http.Request) {
	_, err := userFromRequest(r, h.authService)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID, err := getNoteIDFromPath(r)
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}

	collaborators := h.broker.Presence().Participants(collab.RoomID(noteID))
	if collaborators == nil {
		collaborators = []models.Participant{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"note_id":       noteID,
		"collaborators": collaborators,
		"count":         len(collaborators),
	})
}
