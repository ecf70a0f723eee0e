package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/luksua/API-Repaso/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []int64) (map[int64]*domain.User, error) {
	result := make(map[int64]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

type stubRevoker struct {
	revoked map[string]int64
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]int64)}
}

func (s *stubRevoker) Revoke(_ context.Context, token string, ttlSeconds int64) error {
	s.revoked[token] = ttlSeconds
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := s.revoked[token]
	return ok, nil
}

func newTestAuthService(repo *stubUserRepo, revoker *stubRevoker) *AuthService {
	return NewAuthService(repo, revoker, "secret", time.Hour, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	token, user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	if _, _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	if _, _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "pass5678"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubRevoker())

	_, registered, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	sub, ok := claims["sub"].(float64)
	if !ok || int64(sub) != registered.ID {
		t.Fatalf("expected sub %d, got %v", registered.ID, claims["sub"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_EmailIsCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	if _, _, err := svc.Register(context.Background(), "Dana", "Dana@Example.com", "pass1234"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dana@example.com", "pass1234"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	_, _, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	// An unknown email reports the same error as a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	_, registered, err := svc.Register(context.Background(), "Eve", "eve@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Me(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.Email != "eve@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Me(context.Background(), 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	revoker := newStubRevoker()
	svc := newTestAuthService(newStubUserRepo(), revoker)

	token, _, err := svc.Register(context.Background(), "Frank", "frank@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	ttl, ok := revoker.revoked[token]
	if !ok {
		t.Fatalf("token not revoked")
	}
	if ttl <= 0 || ttl > int64(time.Hour.Seconds())+1 {
		t.Fatalf("unexpected revocation ttl: %d", ttl)
	}
}

func TestAuthService_Logout_MalformedToken(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevoker())

	if err := svc.Logout(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
