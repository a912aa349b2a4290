package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/store"
)

// LocalStore keeps registered users and the current session in SQLite.
// Passwords are stored as bcrypt hashes.
type LocalStore struct {
	users    store.UserRepo
	sessions store.SessionRepo
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore builds a LocalStore over the given repositories.
func NewLocalStore(users store.UserRepo, sessions store.SessionRepo) *LocalStore {
	return &LocalStore{users: users, sessions: sessions}
}

func (s *LocalStore) Register(ctx context.Context, creds Credentials) (*learn.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := store.UserRecord{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, rec); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.openSession(ctx, rec.ID, username)
}

func (s *LocalStore) Login(ctx context.Context, creds Credentials) (*learn.User, error) {
	rec, err := s.users.ByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(creds.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, rec.ID, rec.Username)
}

func (s *LocalStore) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *LocalStore) Current(ctx context.Context) (*learn.User, error) {
	rec, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	return sessionUser(rec), nil
}

func (s *LocalStore) openSession(ctx context.Context, uid, username string) (*learn.User, error) {
	rec := store.SessionRecord{
		UID:      uid,
		Username: username,
	}
	if err := s.sessions.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return sessionUser(&rec), nil
}

func sessionUser(rec *store.SessionRecord) *learn.User {
	return &learn.User{
		UID:         rec.UID,
		Username:    rec.Username,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		PhotoURL:    rec.PhotoURL,
	}
}
