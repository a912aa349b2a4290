package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/careerco/companion/internal/store"
)

func newTestStore(t *testing.T) (*LocalStore, *store.Store) {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewLocalStore(st.UserRepo(), st.SessionRepo()), st
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u, err := s.Register(ctx, Credentials{Username: "asha", Password: "hunter2!"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.UID == "" || u.Username != "asha" {
		t.Fatalf("unexpected user: %+v", u)
	}

	again, err := s.Login(ctx, Credentials{Username: "asha", Password: "hunter2!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if again.UID != u.UID {
		t.Fatalf("login returned different uid: %q vs %q", again.UID, u.UID)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, Credentials{Username: "asha", Password: "pw"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := s.Register(ctx, Credentials{Username: "asha", Password: "other"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, Credentials{Username: "asha", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := s.Login(ctx, Credentials{Username: "asha", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Login(context.Background(), Credentials{Username: "ghost", Password: "pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordStoredAsBcryptHash(t *testing.T) {
	s, st := newTestStore(t)
	ctx := context.Background()

	const password = "plaintext-secret"
	if _, err := s.Register(ctx, Credentials{Username: "asha", Password: password}); err != nil {
		t.Fatalf("register: %v", err)
	}

	rec, err := st.UserRepo().ByUsername(ctx, "asha")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.PasswordHash == password {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSessionPersistsAndLogoutClears(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, Credentials{Username: "asha", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if u == nil || u.Username != "asha" {
		t.Fatalf("expected cached session, got %+v", u)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	u, err = s.Current(ctx)
	if err != nil {
		t.Fatalf("current after logout: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user after logout, got %+v", u)
	}
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, Credentials{Username: " ", Password: "pw"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blank username, got %v", err)
	}
	if _, err := s.Register(ctx, Credentials{Username: "asha", Password: ""}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}
