package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Session is the single source of truth for "who is logged in" on the
// client. It owns the bearer token the transport injects, persists the
// durable (user, token, isAuthenticated) triple across restarts, and resets
// itself when the server rejects the token.
//
// Each operation fully settles before its state transition becomes visible;
// overlapping Login/Register calls race with last-write-wins semantics.
type Session struct {
	client  *Client
	storage Storage
	logger  zerolog.Logger

	mu              sync.Mutex
	user            *User
	token           string
	isAuthenticated bool
	loading         bool
	err             error
}

// NewSession builds a Session bound to client and storage, rehydrating the
// durable state before any operation runs. Rehydration installs the stored
// token without validating it; validity is confirmed lazily by the next Me
// call or the next rejected request. Transient fields always start at their
// defaults.
func NewSession(client *Client, storage Storage, logger zerolog.Logger) (*Session, error) {
	s := &Session{client: client, storage: storage, logger: logger}

	state, err := storage.Load()
	if err != nil {
		return nil, err
	}
	if state != nil {
		s.user = state.User
		s.token = state.Token
		s.isAuthenticated = state.IsAuthenticated
		client.SetToken(state.Token)
		logger.Debug().Bool("authenticated", state.IsAuthenticated).Msg("session rehydrated")
	}
	return s, nil
}

// SetAuth unconditionally installs an authenticated session and clears any
// prior error.
func (s *Session) SetAuth(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.token = token
	s.isAuthenticated = true
	s.err = nil
	s.client.SetToken(token)
	s.persistLocked()
}

// Login exchanges credentials for a session. On failure the session is left
// cleared, the error is recorded, and the failure is returned to the caller.
func (s *Session) Login(ctx context.Context, email, password string) error {
	return s.authenticate(func() (*AuthResult, error) {
		return s.client.Login(ctx, email, password)
	})
}

// Register creates an account and opens a session, under the same contract
// as Login.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	return s.authenticate(func() (*AuthResult, error) {
		return s.client.Register(ctx, name, email, password)
	})
}

func (s *Session) authenticate(call func() (*AuthResult, error)) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	result, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.user = nil
		s.token = ""
		s.isAuthenticated = false
		s.err = err
		s.client.SetToken("")
		s.persistLocked()
		return err
	}

	s.user = result.User
	s.token = result.Token
	s.isAuthenticated = true
	s.client.SetToken(result.Token)
	s.persistLocked()
	return nil
}

// Me probes the server for the current identity. Without a token it is a
// no-op. On success the stored user is refreshed; on any failure the session
// is fully reset. This is the sole automatic invalidation path, and the
// failure is not rethrown.
func (s *Session) Me(ctx context.Context) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("identity probe failed, resetting session")
		s.Reset()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.isAuthenticated = true
	s.persistLocked()
}

// Logout invalidates the session server-side on a best-effort basis, then
// always resets locally. Transport failures are swallowed.
func (s *Session) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Debug().Err(err).Msg("remote logout failed, clearing locally")
		}
	}
	s.Reset()
}

// Reset clears the full session state to its defaults and removes the
// durable record.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.isAuthenticated = false
	s.loading = false
	s.err = nil
	s.client.SetToken("")
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear session storage")
	}
}

// persistLocked writes the durable triple; the caller holds s.mu.
func (s *Session) persistLocked() {
	state := SessionState{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.isAuthenticated,
	}
	if err := s.storage.Save(state); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist session")
	}
}

// User returns the authenticated user, or nil.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the held bearer token, or the empty string.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a session is established.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// Loading reports whether a login or register call is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error recorded by the last failed login or register, or
// nil after any successful operation or reset.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
