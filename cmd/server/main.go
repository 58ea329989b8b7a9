package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"notes-app/internal/auth"
	"notes-app/internal/collab"
	"notes-app/internal/config"
	"notes-app/internal/database"
	"notes-app/internal/handlers"
	"notes-app/internal/services"
	"notes-app/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize services
	authService := auth.NewService(db, cfg)
	noteService := services.NewNoteService(db)

	// Initialize collaboration broker
	broker := collab.NewBroker(cfg.Collab)

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(authService)
	noteHandlers := handlers.NewNoteHandlers(noteService, authService)
	collabHandlers := handlers.NewCollabHandlers(authService, broker)

	// Setup routes
	mux := http.NewServeMux()
	setupRoutes(mux, authHandlers, noteHandlers, collabHandlers)

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      corsMiddleware(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	logger.Info("🚀 Server started on http://localhost%s", cfg.Server.Port)
	logger.Info("📡 Collaboration endpoint: ws://localhost%s/ws", cfg.Server.Port)
	printAPIEndpoints()

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server shutting down...")
}

func setupRoutes(mux *http.ServeMux, authHandlers *handlers.AuthHandlers, noteHandlers *handlers.NoteHandlers, collabHandlers *handlers.CollabHandlers) {
	// Auth routes
	mux.HandleFunc("/login", authHandlers.Login)
	mux.HandleFunc("/register", authHandlers.Register)

	// Note collection routes
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notes" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			noteHandlers.ListNotes(w, r)
		case http.MethodPost:
			noteHandlers.CreateNote(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Note sub-routes
	mux.HandleFunc("/notes/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 3 || parts[2] == "" {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}

		// /notes/{id}/share
		if len(parts) == 4 && parts[3] == "share" && r.Method == http.MethodPost {
			noteHandlers.ShareNote(w, r)
			return
		}

		// /notes/{id}/collaborators
		if len(parts) == 4 && parts[3] == "collaborators" && r.Method == http.MethodGet {
			collabHandlers.ActiveCollaborators(w, r)
			return
		}

		// /notes/{id}
		if len(parts) == 3 {
			switch r.Method {
			case http.MethodGet:
				noteHandlers.GetNote(w, r)
			case http.MethodPut:
				noteHandlers.UpdateNote(w, r)
			case http.MethodDelete:
				noteHandlers.DeleteNote(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		http.Error(w, "endpoint not found", http.StatusNotFound)
	})

	// WebSocket route
	mux.HandleFunc("/ws", collabHandlers.HandleWebSocket)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func printAPIEndpoints() {
	logger.Info("🔗 API endpoints:")
	logger.Info("   POST /login")
	logger.Info("   POST /register")
	logger.Info("   GET  /notes")
	logger.Info("   POST /notes")
	logger.Info("   GET  /notes/{id}")
	logger.Info("   PUT  /notes/{id}")
	logger.Info("   DELETE /notes/{id}")
	logger.Info("   POST /notes/{id}/share")
	logger.Info("   GET  /notes/{id}/collaborators")
}
