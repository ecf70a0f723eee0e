package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// memStorage is an in-memory Storage for session tests.
type memStorage struct {
	state    *SessionState
	saves    int
	clears   int
	clearErr error
}

func (m *memStorage) Load() (*SessionState, error) {
	return m.state, nil
}

func (m *memStorage) Save(state SessionState) error {
	s := state
	m.state = &s
	m.saves++
	return nil
}

func (m *memStorage) Clear() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.state = nil
	m.clears++
	return nil
}

func authServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestSession_LoginPersistsDurableState(t *testing.T) {
	srv := authServer(t, http.StatusOK,
		`{"user":{"id":1,"name":"Alice","email":"alice@example.com"},"token":"tok-1"}`)
	defer srv.Close()

	c := New(srv.URL)
	store := &memStorage{}
	s, err := NewSession(c, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !s.IsAuthenticated() || s.Token() != "tok-1" {
		t.Fatalf("session not established: token=%q auth=%v", s.Token(), s.IsAuthenticated())
	}
	if s.Loading() || s.Err() != nil {
		t.Fatalf("transients not settled: loading=%v err=%v", s.Loading(), s.Err())
	}
	if c.Token() != "tok-1" {
		t.Fatalf("token not installed on transport")
	}
	if store.state == nil || store.state.Token != "tok-1" || !store.state.IsAuthenticated {
		t.Fatalf("durable state not persisted: %+v", store.state)
	}
}

func TestSession_LoginFailureClearsSession(t *testing.T) {
	srv := authServer(t, http.StatusUnauthorized, `{"message":"Credenciales incorrectas"}`)
	defer srv.Close()

	c := New(srv.URL)
	store := &memStorage{}
	s, err := NewSession(c, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	loginErr := s.Login(context.Background(), "alice@example.com", "wrong")
	if loginErr == nil {
		t.Fatalf("expected login error")
	}
	if s.IsAuthenticated() || s.Token() != "" || s.User() != nil {
		t.Fatalf("failed login must clear the session")
	}
	if s.Err() == nil {
		t.Fatalf("error not recorded")
	}
	if s.Loading() {
		t.Fatalf("loading must settle after failure")
	}
}

func TestSession_Rehydration(t *testing.T) {
	c := New("http://unused")
	store := &memStorage{state: &SessionState{
		User:            &User{ID: 4, Name: "Dana", Email: "dana@example.com"},
		Token:           "tok-old",
		IsAuthenticated: true,
	}}

	s, err := NewSession(c, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if !s.IsAuthenticated() || s.Token() != "tok-old" {
		t.Fatalf("durable state not rehydrated")
	}
	if c.Token() != "tok-old" {
		t.Fatalf("stored token not installed on transport")
	}
	if s.Loading() || s.Err() != nil {
		t.Fatalf("transients must start at defaults")
	}
}

func TestSession_MeFailureResets(t *testing.T) {
	srv := authServer(t, http.StatusUnauthorized, `{"message":"Sesión expirada"}`)
	defer srv.Close()

	c := New(srv.URL)
	store := &memStorage{state: &SessionState{
		User:            &User{ID: 4},
		Token:           "tok-stale",
		IsAuthenticated: true,
	}}
	s, err := NewSession(c, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	s.Me(context.Background())

	if s.IsAuthenticated() || s.Token() != "" || s.User() != nil {
		t.Fatalf("rejected probe must reset the session")
	}
	if store.state != nil {
		t.Fatalf("durable record must be cleared")
	}
	if c.Token() != "" {
		t.Fatalf("stale token still installed on transport")
	}
}

func TestSession_MeWithoutTokenIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := NewSession(c, &memStorage{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	s.Me(context.Background())
	if called {
		t.Fatalf("probe must not hit the server without a token")
	}
}

func TestSession_LogoutSwallowsTransportError(t *testing.T) {
	srv := authServer(t, http.StatusServiceUnavailable, `{"message":"unavailable"}`)
	defer srv.Close()

	c := New(srv.URL)
	store := &memStorage{state: &SessionState{Token: "tok-1", IsAuthenticated: true}}
	s, err := NewSession(c, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	s.Logout(context.Background())

	if s.IsAuthenticated() || s.Token() != "" {
		t.Fatalf("logout must reset locally even when the server call fails")
	}
	if store.state != nil {
		t.Fatalf("durable record must be cleared")
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	state := SessionState{
		User:            &User{ID: 1, Name: "Alice", Email: "alice@example.com"},
		Token:           "tok-1",
		IsAuthenticated: true,
	}
	if err := store.Save(state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.Token != "tok-1" || !loaded.IsAuthenticated {
		t.Fatalf("unexpected state %+v", loaded)
	}
	if loaded.User == nil || loaded.User.Email != "alice@example.com" {
		t.Fatalf("user not restored: %+v", loaded.User)
	}

	// The on-disk record is versioned and keys the state under "state".
	raw, err := os.ReadFile(filepath.Join(dir, "auth-store.json"))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(raw, &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if string(record["version"]) != "1" {
		t.Fatalf("unexpected version %s", record["version"])
	}
	if _, ok := record["state"]; !ok {
		t.Fatalf("state envelope missing: %s", raw)
	}
}

func TestFileStorage_MissingFile(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	state, err := store.Load()
	if err != nil || state != nil {
		t.Fatalf("missing record must load as nil, got %v / %v", state, err)
	}
}

func TestFileStorage_CorruptRecordDiscarded(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "auth-store.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	state, err := store.Load()
	if err != nil || state != nil {
		t.Fatalf("corrupt record must load as nil, got %v / %v", state, err)
	}
}

func TestFileStorage_VersionMismatchDiscarded(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	record := `{"state":{"user":null,"token":"tok-1","isAuthenticated":true},"version":99}`
	if err := os.WriteFile(filepath.Join(dir, "auth-store.json"), []byte(record), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}

	state, err := store.Load()
	if err != nil || state != nil {
		t.Fatalf("version mismatch must load as nil, got %v / %v", state, err)
	}
}

func TestFileStorage_Clear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if err := store.Save(SessionState{Token: "tok-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "auth-store.json")); !os.IsNotExist(err) {
		t.Fatalf("record still on disk")
	}
}
