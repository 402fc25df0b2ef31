package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const keyPrefix = "emmita:identity:"

// IdentityCache implements port.IdentityCache on Redis so verified identities
// are shared between instances.
type IdentityCache struct {
	client *redis.Client
}

// NewIdentityCacheWithURL creates a cache from a redis:// URL.
func NewIdentityCacheWithURL(url string) (*IdentityCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewIdentityCacheWithClient(redis.NewClient(opts)), nil
}

// NewIdentityCacheWithClient wraps an existing client.
func NewIdentityCacheWithClient(client *redis.Client) *IdentityCache {
	return &IdentityCache{client: client}
}

// Get returns the cached identity for key. A miss is not an error.
func (c *IdentityCache) Get(ctx context.Context, key string) (*domain.Identity, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, false, fmt.Errorf("decode cached identity: %w", err)
	}
	return &identity, true, nil
}

// Set stores identity under key for ttl.
func (c *IdentityCache) Set(ctx context.Context, key string, identity *domain.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

// HealthCheck pings Redis.
func (c *IdentityCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *IdentityCache) Close() error {
	return c.client.Close()
}
