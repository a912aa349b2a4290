// Package profile mirrors the learner's progress profile into the remote
// document store. Sync is fire-and-forget: the local Context stays the
// source of truth for the running session and failures are only logged.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careerco/companion/internal/learn"
)

const usersCollection = "users"

// Profile is the per-user document keyed by uid.
type Profile struct {
	UID         string  `firestore:"uid"`
	Email       string  `firestore:"email"`
	DisplayName string  `firestore:"displayName"`
	PhotoURL    string  `firestore:"photoURL"`
	XP          int     `firestore:"xp"`
	Streak      int     `firestore:"streak"`
	Persona     *string `firestore:"persona"`
	CreatedAt   string  `firestore:"createdAt"`
	LastLogin   string  `firestore:"lastLogin"`
}

// Syncer reads and writes progress profiles.
type Syncer struct {
	client *firestore.Client
	log    *slog.Logger
}

// NewSyncer builds a Syncer over a Firestore client.
func NewSyncer(ctx context.Context, projectID string, log *slog.Logger) (*Syncer, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for the profile syncer")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Syncer{client: client, log: log}, nil
}

// Close releases the Firestore client.
func (s *Syncer) Close() error {
	return s.client.Close()
}

func (s *Syncer) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(uid)
}

// Ensure upserts the profile document for a freshly authenticated user:
// absent documents get a zero profile, existing ones get their volatile
// identity fields and lastLogin refreshed. Must complete before Load so
// the read is guaranteed to find a document.
func (s *Syncer) Ensure(ctx context.Context, u *learn.User) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.doc(u.UID).Get(ctx)
	switch {
	case status.Code(err) == codes.NotFound:
		_, err = s.doc(u.UID).Set(ctx, Profile{
			UID:         u.UID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
			XP:          0,
			Streak:      0,
			Persona:     nil,
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read profile: %w", err)
	}

	_, err = s.doc(u.UID).Update(ctx, []firestore.Update{
		{Path: "email", Value: u.Email},
		{Path: "displayName", Value: u.DisplayName},
		{Path: "photoURL", Value: u.PhotoURL},
		{Path: "lastLogin", Value: now},
	})
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	return nil
}

// Load reads the profile and hydrates the Context. Fields absent in the
// remote document never clobber local defaults.
func (s *Syncer) Load(ctx context.Context, uid string, lc *learn.Context) error {
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	data := snap.Data()
	xp, streak := -1, -1
	if v, ok := data["xp"].(int64); ok {
		xp = int(v)
	}
	if v, ok := data["streak"].(int64); ok {
		streak = int(v)
	}
	var persona *learn.Persona
	if v, ok := data["persona"].(string); ok && v != "" {
		if p, err := learn.ParsePersona(v); err == nil {
			persona = &p
		}
	}

	lc.Hydrate(xp, streak, persona)
	return nil
}

// SetPersona overwrites the persona field, last write wins. A nil persona
// clears the field.
func (s *Syncer) SetPersona(ctx context.Context, uid string, p *learn.Persona) error {
	var value any
	if p != nil {
		value = string(*p)
	}
	_, err := s.doc(uid).Update(ctx, []firestore.Update{
		{Path: "persona", Value: value},
	})
	if err != nil {
		return fmt.Errorf("update persona: %w", err)
	}
	return nil
}

// AddXP applies an atomic server-side increment so concurrent sessions
// never lose awards.
func (s *Syncer) AddXP(ctx context.Context, uid string, amount int) error {
	_, err := s.doc(uid).Update(ctx, []firestore.Update{
		{Path: "xp", Value: firestore.Increment(amount)},
	})
	if err != nil {
		return fmt.Errorf("increment xp: %w", err)
	}
	return nil
}

// Bind wires the Context mutation hooks to fire-and-forget sync calls for
// the given user. Failures are logged and never block the UI.
func (s *Syncer) Bind(lc *learn.Context, uid string) {
	lc.OnPersonaChange = func(p *learn.Persona) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.SetPersona(ctx, uid, p); err != nil {
				s.log.Warn("persona sync failed", "uid", uid, "err", err)
			}
		}()
	}
	lc.OnXPAward = func(amount int) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.AddXP(ctx, uid, amount); err != nil {
				s.log.Warn("xp sync failed", "uid", uid, "amount", amount, "err", err)
			}
		}()
	}
}

// Hydrate performs the login-time upsert-then-read sequence. The upsert
// must complete first so the read is guaranteed a document.
func (s *Syncer) Hydrate(ctx context.Context, u *learn.User, lc *learn.Context) {
	if err := s.Ensure(ctx, u); err != nil {
		s.log.Warn("profile upsert failed", "uid", u.UID, "err", err)
		return
	}
	if err := s.Load(ctx, u.UID, lc); err != nil {
		s.log.Warn("profile load failed", "uid", u.UID, "err", err)
	}
}
