package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/accountsapi/accounts-service/internal/core/domain"
)

const defaultRoleTTL = time.Hour

// RoleCache caches role records by name.
// Key format: role:<name>
type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
// A non-positive ttl falls back to one hour.
func NewRoleCache(client *redis.Client, ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{client: client, ttl: ttl}
}

// Get returns the cached role; ok is false on a miss.
func (c *RoleCache) Get(ctx context.Context, name string) (*domain.Role, bool, error) {
	raw, err := c.client.Get(ctx, c.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("role cache get: %w", err)
	}

	var role domain.Role
	if err := json.Unmarshal(raw, &role); err != nil {
		return nil, false, fmt.Errorf("role cache decode: %w", err)
	}
	return &role, true, nil
}

// Set stores role under its name until the TTL expires.
func (c *RoleCache) Set(ctx context.Context, role *domain.Role) error {
	raw, err := json.Marshal(role)
	if err != nil {
		return fmt.Errorf("role cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(role.Name), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("role cache set: %w", err)
	}
	return nil
}

func (c *RoleCache) key(name string) string {
	return "role:" + name
}
