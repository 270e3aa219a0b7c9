package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
)

// TokenRevocationRepository keeps the ids of revoked access tokens in Redis
// until the tokens would have expired anyway.
type TokenRevocationRepository struct {
	client *redis.Client
}

// NewTokenRevocationRepository creates a new repository instance.
func NewTokenRevocationRepository(client *redis.Client) *TokenRevocationRepository {
	return &TokenRevocationRepository{client: client}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke marks tokenID as revoked until expiresAt. Already expired tokens are skipped.
func (r *TokenRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	key := revokedKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.FromContext(ctx).Infow(
		"key", key,
		"ttl", ttl,
		"result", "revoked",
		"error", err,
	)

	return err
}

// IsRevoked reports whether tokenID has been revoked.
func (r *TokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.FromContext(ctx).Debugw(
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}
