package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/tenancy-api/internal/domain"
)

const (
	keyPrefix = "role:"
	noneValue = "none"
)

// RedisRoleCache keeps resolved tenant roles in redis with a short TTL, so
// every API replica sees the same invalidations.
type RedisRoleCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisRoleCache(client redis.Cmdable, ttl time.Duration) *RedisRoleCache {
	return &RedisRoleCache{
		client: client,
		ttl:    ttl,
	}
}

func roleKey(principalID, tenantID string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, tenantID, principalID)
}

func (c *RedisRoleCache) Get(ctx context.Context, principalID, tenantID string) (domain.Role, bool, error) {
	value, err := c.client.Get(ctx, roleKey(principalID, tenantID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.RoleNone, false, nil
		}
		return domain.RoleNone, false, fmt.Errorf("failed to read role cache: %w", err)
	}
	return decodeRole(value)
}

func (c *RedisRoleCache) Set(ctx context.Context, principalID, tenantID string, role domain.Role) error {
	if err := c.client.Set(ctx, roleKey(principalID, tenantID), encodeRole(role), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write role cache: %w", err)
	}
	return nil
}

func (c *RedisRoleCache) Invalidate(ctx context.Context, principalID, tenantID string) error {
	if err := c.client.Del(ctx, roleKey(principalID, tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate role cache: %w", err)
	}
	return nil
}

func encodeRole(role domain.Role) string {
	if role == domain.RoleNone {
		return noneValue
	}
	return role.String()
}

// decodeRole treats unreadable values as a miss.
func decodeRole(value string) (domain.Role, bool, error) {
	if value == noneValue {
		return domain.RoleNone, true, nil
	}
	role, err := domain.ParseRole(value)
	if err != nil {
		return domain.RoleNone, false, nil
	}
	return role, true, nil
}
