package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogTTL = 5 * time.Minute

// CatalogCache caches the serialized catalog listings. It satisfies
// service.CatalogCache; a miss is (nil, false, nil) so callers fall through
// to Mongo.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, catalogTTL).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
