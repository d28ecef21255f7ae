package tenancy

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RegistryCache is a read-through cache in front of the tenant registry.
// Registry entries never change once written, so cached names only expire to
// bound memory.
type RegistryCache interface {
	Get(ctx context.Context, userID string) (dbName string, ok bool, err error)
	Set(ctx context.Context, userID, dbName string) error
}

const registryCacheKeyPrefix = "kinext:instance:"

type redisRegistryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistryCache creates a RegistryCache backed by Redis.
func NewRedisRegistryCache(client *redis.Client, ttl time.Duration) RegistryCache {
	return &redisRegistryCache{client: client, ttl: ttl}
}

func (c *redisRegistryCache) Get(ctx context.Context, userID string) (string, bool, error) {
	dbName, err := c.client.Get(ctx, registryCacheKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return dbName, true, nil
}

func (c *redisRegistryCache) Set(ctx context.Context, userID, dbName string) error {
	return c.client.Set(ctx, registryCacheKeyPrefix+userID, dbName, c.ttl).Err()
}
