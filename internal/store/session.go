package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SessionRecord is the single cached sign-in. At most one row exists; a
// new sign-in replaces it.
type SessionRecord struct {
	UID         string
	Username    string
	Email       string
	DisplayName string
	PhotoURL    string
}

// SessionRepo persists the current session across runs.
type SessionRepo interface {
	// Put replaces the cached session.
	Put(ctx context.Context, s SessionRecord) error

	// Get returns the cached session, or ErrNotFound when signed out.
	Get(ctx context.Context) (*SessionRecord, error)

	// Clear removes the cached session.
	Clear(ctx context.Context) error
}

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Put(ctx context.Context, s SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, uid, username, email, display_name, photo_url)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			uid = excluded.uid,
			username = excluded.username,
			email = excluded.email,
			display_name = excluded.display_name,
			photo_url = excluded.photo_url,
			created_at = CURRENT_TIMESTAMP`,
		s.UID, s.Username, s.Email, s.DisplayName, s.PhotoURL,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT uid, username, email, display_name, photo_url FROM session WHERE id = 1`,
	)

	var s SessionRecord
	if err := row.Scan(&s.UID, &s.Username, &s.Email, &s.DisplayName, &s.PhotoURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
