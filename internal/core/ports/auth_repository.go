package ports

import (
	"context"

	"github.com/luksua/API-Repaso/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByIDs returns the users for the given ids, keyed by id. Missing
	// ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}

// TokenRevoker tracks bearer tokens invalidated before their natural expiry.
type TokenRevoker interface {
	// Revoke records the token as invalid for at least ttl.
	Revoke(ctx context.Context, token string, ttlSeconds int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
