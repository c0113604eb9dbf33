package user

import (
	"context"
	"errors"
	"time"

	"clinichub/utils"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by TokenCache.Get when no hash is cached.
var ErrCacheMiss = errors.New("token cache miss")

// TokenCache caches the active token hash per user.
type TokenCache interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, hash string, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

// RedisTokenCache stores token hashes under "auth:<userID>".
type RedisTokenCache struct {
	Client *redis.Client
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{Client: client}
}

func (c *RedisTokenCache) Get(ctx context.Context, userID string) (string, error) {
	hash, err := c.Client.Get(ctx, utils.AuthCachePrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return hash, err
}

func (c *RedisTokenCache) Set(ctx context.Context, userID, hash string, ttl time.Duration) error {
	return c.Client.Set(ctx, utils.AuthCachePrefix+userID, hash, ttl).Err()
}

func (c *RedisTokenCache) Delete(ctx context.Context, userID string) error {
	return c.Client.Del(ctx, utils.AuthCachePrefix+userID).Err()
}
