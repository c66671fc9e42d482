package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/acquisitions/user-api/internal/api/metrics"
	"github.com/acquisitions/user-api/internal/core/domain"
)

const (
	userListKey = "users:all"
	userListTTL = 30 * time.Second
)

// UserListCache caches the public user listing under a single key with a
// short TTL. Mutating operations invalidate it so stale reads are bounded
// by userListTTL even if an invalidation is lost.
type UserListCache struct {
	client *redis.Client
}

// NewUserListCache creates a UserListCache wrapping the given Redis client.
func NewUserListCache(client *redis.Client) *UserListCache {
	return &UserListCache{client: client}
}

// Get returns the cached listing, reporting whether the key was present.
func (c *UserListCache) Get(ctx context.Context) ([]domain.Projection, bool, error) {
	payload, err := c.client.Get(ctx, userListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.UserListCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("user list cache get: %w", err)
	}

	var users []domain.Projection
	if err := json.Unmarshal(payload, &users); err != nil {
		return nil, false, fmt.Errorf("user list cache decode: %w", err)
	}

	metrics.UserListCacheTotal.WithLabelValues("hit").Inc()
	return users, true, nil
}

// Set stores the listing (expires after userListTTL).
func (c *UserListCache) Set(ctx context.Context, users []domain.Projection) error {
	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("user list cache encode: %w", err)
	}
	return c.client.Set(ctx, userListKey, payload, userListTTL).Err()
}

// Invalidate drops the cached listing.
func (c *UserListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, userListKey).Err()
}
