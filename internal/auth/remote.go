package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/store"
)

// identityToolkitURL is the hosted identity provider endpoint. Email and
// password sign-in is only exposed over this REST surface; the provider's
// Go SDK covers administration, not credential verification.
const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// RemoteStore delegates credential verification to the hosted identity
// provider and caches the resulting session locally so Current stays a
// synchronous read.
type RemoteStore struct {
	apiKey   string
	client   *http.Client
	sessions store.SessionRepo

	mu      sync.Mutex
	current *learn.User
	subs    map[int]func(u *learn.User)
	nextSub int
}

var _ Store = (*RemoteStore)(nil)
var _ Notifier = (*RemoteStore)(nil)

// NewRemoteStore builds a RemoteStore. The cached session, if any, becomes
// the initial auth state.
func NewRemoteStore(apiKey string, sessions store.SessionRepo) *RemoteStore {
	s := &RemoteStore{
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
		subs:     make(map[int]func(u *learn.User)),
	}
	if rec, err := sessions.Get(context.Background()); err == nil {
		s.current = sessionUser(rec)
	}
	return s
}

func (s *RemoteStore) Register(ctx context.Context, creds Credentials) (*learn.User, error) {
	return s.authenticate(ctx, "accounts:signUp", creds)
}

func (s *RemoteStore) Login(ctx context.Context, creds Credentials) (*learn.User, error) {
	return s.authenticate(ctx, "accounts:signInWithPassword", creds)
}

func (s *RemoteStore) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.setCurrent(nil)
	return nil
}

func (s *RemoteStore) Current(ctx context.Context) (*learn.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

// Subscribe registers an auth state callback. The callback is invoked
// immediately with the current state, then on every sign-in/sign-out.
func (s *RemoteStore) Subscribe(fn func(u *learn.User)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

type identityRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identityResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *RemoteStore) authenticate(ctx context.Context, endpoint string, creds Credentials) (*learn.User, error) {
	body, err := json.Marshal(identityRequest{
		Email:             strings.TrimSpace(creds.Username),
		Password:          creds.Password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", identityToolkitURL, endpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	var out identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if out.Error != nil {
		return nil, mapIdentityError(out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider: status %d", resp.StatusCode)
	}

	user := mapRemoteUser(out)
	rec := store.SessionRecord{
		UID:         user.UID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	if err := s.sessions.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.setCurrent(user)
	return user, nil
}

func (s *RemoteStore) setCurrent(u *learn.User) {
	s.mu.Lock()
	s.current = u
	subs := make([]func(u *learn.User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

// mapRemoteUser maps a provider record to the app user. Username falls
// back to the email local part when no display name is set.
func mapRemoteUser(out identityResponse) *learn.User {
	username := out.DisplayName
	if username == "" {
		if at := strings.IndexByte(out.Email, '@'); at > 0 {
			username = out.Email[:at]
		} else {
			username = "User"
		}
	}
	return &learn.User{
		UID:         out.LocalID,
		Username:    username,
		Email:       out.Email,
		DisplayName: out.DisplayName,
		PhotoURL:    out.PhotoURL,
	}
}

func mapIdentityError(code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return ErrDuplicateUser
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return ErrInvalidCredentials
	}
	return fmt.Errorf("identity provider: %s", code)
}
