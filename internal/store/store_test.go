package store

import (
	"context"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserCreateAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.UserRepo().Create(ctx, UserRecord{ID: "u1", Username: "asha", PasswordHash: "$2a$x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := s.UserRepo().ByUsername(ctx, "asha")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.ID != "u1" || rec.PasswordHash != "$2a$x" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UserRepo().Create(ctx, UserRecord{ID: "u1", Username: "asha", PasswordHash: "h"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := s.UserRepo().Create(ctx, UserRecord{ID: "u2", Username: "asha", PasswordHash: "h"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.UserRepo().ByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	put := SessionRecord{UID: "u1", Username: "asha", Email: "a@b.c", DisplayName: "Asha"}
	if err := s.SessionRepo().Put(ctx, put); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.SessionRepo().Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UID != "u1" || got.Username != "asha" || got.Email != "a@b.c" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionPutReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SessionRepo().Put(ctx, SessionRecord{UID: "u1", Username: "first"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.SessionRepo().Put(ctx, SessionRecord{UID: "u2", Username: "second"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.SessionRepo().Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UID != "u2" {
		t.Fatalf("expected replaced session, got %+v", got)
	}
}

func TestSessionClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SessionRepo().Put(ctx, SessionRecord{UID: "u1", Username: "asha"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.SessionRepo().Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, err := s.SessionRepo().Get(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, purpose := range []string{"lesson", "tutor", "lesson"} {
		err := s.EventRepo().Append(ctx, GatewayEventData{
			Purpose: purpose, Provider: "mock", Model: "mock",
			LatencyMs: 5, Success: true, InputChars: 10, OutputChars: 20,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := s.EventRepo().Query(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	// Newest first.
	if all[0].ID < all[1].ID {
		t.Fatal("events not ordered newest first")
	}

	lessonsOnly, err := s.EventRepo().Query(ctx, QueryOpts{Purpose: "lesson"})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(lessonsOnly) != 2 {
		t.Fatalf("expected 2 lesson events, got %d", len(lessonsOnly))
	}

	limited, err := s.EventRepo().Query(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("limited query: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 event, got %d", len(limited))
	}
}

func TestEventFailureRecordsError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.EventRepo().Append(ctx, GatewayEventData{
		Purpose: "vision", Provider: "gemini", Model: "m",
		Success: false, Error: "deadline exceeded",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := s.EventRepo().Query(ctx, QueryOpts{Purpose: "vision"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Success || events[0].Error != "deadline exceeded" {
		t.Fatalf("unexpected event: %+v", events)
	}
}
