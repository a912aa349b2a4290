package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database backing the local session store and the
// gateway event log.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended pragmas
// and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// OpenMemory opens a throwaway in-memory database. Used by tests.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UserRepo returns a UserRepo backed by this store.
func (s *Store) UserRepo() UserRepo {
	return &userRepo{db: s.db}
}

// SessionRepo returns a SessionRepo backed by this store.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{db: s.db}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS session (
		id           INTEGER PRIMARY KEY CHECK (id = 1),
		uid          TEXT NOT NULL,
		username     TEXT NOT NULL,
		email        TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		photo_url    TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS gateway_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		purpose      TEXT NOT NULL,
		provider     TEXT NOT NULL,
		model        TEXT NOT NULL,
		latency_ms   INTEGER NOT NULL,
		success      INTEGER NOT NULL,
		error        TEXT NOT NULL DEFAULT '',
		input_chars  INTEGER NOT NULL DEFAULT 0,
		output_chars INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_gateway_events_ts ON gateway_events(timestamp);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user desktop use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. COMPANION_DB environment variable
// 2. $XDG_DATA_HOME/companion/companion.db
// 3. ~/.local/share/companion/companion.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COMPANION_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "companion", "companion.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
