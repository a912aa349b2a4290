// Package auth provides the session store: credential issuance/validation
// plus cached-session lookup. Two interchangeable backends exist — a local
// SQLite store and a hosted identity provider.
package auth

import (
	"context"
	"errors"

	"github.com/careerco/companion/internal/learn"
)

// ErrDuplicateUser is returned by Register when the identity already exists.
var ErrDuplicateUser = errors.New("user already registered")

// ErrInvalidCredentials is returned by Login on a bad username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is a username (email for the remote variant) and password.
type Credentials struct {
	Username string
	Password string
}

// Store issues and validates sessions.
type Store interface {
	// Register creates a new identity and signs it in.
	// Fails with ErrDuplicateUser when the identity exists.
	Register(ctx context.Context, creds Credentials) (*learn.User, error)

	// Login validates credentials and signs the user in.
	// Fails with ErrInvalidCredentials on mismatch.
	Login(ctx context.Context, creds Credentials) (*learn.User, error)

	// Logout clears the persisted session.
	Logout(ctx context.Context) error

	// Current returns the cached session user, or nil when signed out.
	// Best-effort: reads local state only, no provider round trip.
	Current(ctx context.Context) (*learn.User, error)
}

// Notifier is implemented by stores that push auth state changes. The
// callback fires once immediately with the current state and again on
// every sign-in and sign-out. The returned func unsubscribes; call it on
// teardown or the callback leaks.
type Notifier interface {
	Subscribe(fn func(u *learn.User)) (unsubscribe func())
}
