package amadeus

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// TokenCache stores OAuth access tokens until shortly before they expire.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MemoryTokenCache is a process-local TokenCache.
type MemoryTokenCache struct {
	cache *cache.Cache
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{cache: cache.New(30*time.Minute, 10*time.Minute)}
}

func (c *MemoryTokenCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	tok, ok := v.(string)
	return tok, ok, nil
}

func (c *MemoryTokenCache) Set(_ context.Context, key, token string, ttl time.Duration) error {
	c.cache.Set(key, token, ttl)
	return nil
}

func (c *MemoryTokenCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// RedisTokenCache shares tokens across API replicas.
type RedisTokenCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisTokenCache(rdb *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{rdb: rdb, prefix: "voyage:amadeus:token:"}
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, token, ttl).Err()
}

func (c *RedisTokenCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.prefix+key).Err()
}
