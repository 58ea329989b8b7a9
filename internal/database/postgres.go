package database

import (
	"context"
	"fmt"

	"notes-app/internal/models"
	"notes-app/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully")
	return &PostgresStore{pool: pool}, nil
}

func (db *PostgresStore) Close() error {
	db.pool.Close()
	return nil
}

// User Repository Implementation
func (db *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`

	user := &models.User{}
	err := db.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (db *PostgresStore) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, email, created_at`

	user := &models.User{PasswordHash: string(hash)}
	err = db.pool.QueryRow(ctx, query, req.Name, req.Email, string(hash)).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (db *PostgresStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	user := &models.User{}
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Note Repository Implementation
func (db *PostgresStore) CreateNote(ctx context.Context, ownerID int, title string) (*models.Note, error) {
	query := `
		INSERT INTO notes (id, title, content, owner_id, created_at, updated_at)
		VALUES ($1, $2, '', $3, NOW(), NOW())
		RETURNING id, title, content, owner_id, created_at, updated_at`

	note := &models.Note{}
	err := db.pool.QueryRow(ctx, query, uuid.NewString(), title, ownerID).Scan(
		&note.ID, &note.Title, &note.Content, &note.OwnerID, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

func (db *PostgresStore) GetNoteByID(ctx context.Context, id string) (*models.Note, error) {
	query := `SELECT id, title, content, owner_id, created_at, updated_at FROM notes WHERE id = $1`

	note := &models.Note{}
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&note.ID, &note.Title, &note.Content, &note.OwnerID, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	shares, err := db.GetShares(ctx, id)
	if err != nil {
		return nil, err
	}
	note.SharedWith = shares

	return note, nil
}

func (db *PostgresStore) ListNotesForUser(ctx context.Context, userID int) ([]*models.Note, error) {
	query := `
		SELECT DISTINCT n.id, n.title, n.content, n.owner_id, n.created_at, n.updated_at
		FROM notes n
		LEFT JOIN note_shares s ON n.id = s.note_id
		WHERE n.owner_id = $1 OR s.user_id = $1
		ORDER BY n.updated_at DESC`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.OwnerID, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func (db *PostgresStore) UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error) {
	query := `
		UPDATE notes SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, content, owner_id, created_at, updated_at`

	note := &models.Note{}
	err := db.pool.QueryRow(ctx, query, id, title, content).Scan(
		&note.ID, &note.Title, &note.Content, &note.OwnerID, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return note, nil
}

func (db *PostgresStore) DeleteNote(ctx context.Context, id string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM note_shares WHERE note_id = $1", id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM notes WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Share Repository Implementation
func (db *PostgresStore) UpsertShare(ctx context.Context, noteID string, userID int, role models.Role) error {
	query := `
		INSERT INTO note_shares (note_id, user_id, role) VALUES ($1, $2, $3)
		ON CONFLICT (note_id, user_id) DO UPDATE SET role = EXCLUDED.role`

	_, err := db.pool.Exec(ctx, query, noteID, userID, role)
	return err
}

func (db *PostgresStore) GetShares(ctx context.Context, noteID string) ([]models.ShareEntry, error) {
	query := `SELECT user_id, role FROM note_shares WHERE note_id = $1 ORDER BY user_id`

	rows, err := db.pool.Query(ctx, query, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.ShareEntry
	for rows.Next() {
		var entry models.ShareEntry
		if err := rows.Scan(&entry.UserID, &entry.Role); err != nil {
			return nil, err
		}
		shares = append(shares, entry)
	}

	return shares, rows.Err()
}
