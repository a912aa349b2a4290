package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when creating a user whose username already
// exists.
var ErrUsernameTaken = errors.New("username already taken")

// UserRecord is a locally registered user. PasswordHash is a bcrypt hash —
// plaintext is never stored.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepo manages locally registered users.
type UserRepo interface {
	// Create inserts a new user. Returns ErrUsernameTaken when the
	// username is already registered.
	Create(ctx context.Context, u UserRecord) error

	// ByUsername looks up a user. Returns ErrNotFound when absent.
	ByUsername(ctx context.Context, username string) (*UserRecord, error)
}

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, u UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) ByUsername(ctx context.Context, username string) (*UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	)

	var u UserRecord
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. modernc.org/sqlite does not export a typed error for this.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
