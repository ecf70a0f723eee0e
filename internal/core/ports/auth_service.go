package ports

import (
	"context"

	"github.com/luksua/API-Repaso/internal/core/domain"
)

// AuthService implements registration, login, identity lookup and logout.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me returns the current identity for the authenticated user id.
	Me(ctx context.Context, userID int64) (*domain.User, error)
	// Logout invalidates the presented bearer token until its expiry.
	Logout(ctx context.Context, token string) error
}
