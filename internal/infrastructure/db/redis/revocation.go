package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList tracks bearer tokens invalidated by logout, backed by Redis.
// Entries expire together with the token, so the list never grows unbounded.
// Key format: revoked:<sha256(token)>
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke records the token as invalid for ttlSeconds.
func (l *RevocationList) Revoke(ctx context.Context, token string, ttlSeconds int64) error {
	if ttlSeconds <= 0 {
		return nil
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	if err := l.client.Set(ctx, l.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been invalidated.
func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
