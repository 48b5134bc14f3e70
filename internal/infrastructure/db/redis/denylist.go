package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist stores revoked tokens until their natural expiry.
// Key format: revoked:<sha256 of the raw token>.
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks the token as revoked for ttlSeconds — callers pass the time
// remaining until the token's exp claim.
func (d *Denylist) Revoke(ctx context.Context, token string, ttlSeconds int64) error {
	if ttlSeconds <= 0 {
		return nil
	}
	err := d.client.Set(ctx, d.key(token), "1", time.Duration(ttlSeconds)*time.Second).Err()
	if err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
