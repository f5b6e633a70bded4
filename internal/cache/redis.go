package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCachePrefix namespaces page entries so Clear never touches keys
// owned by other components sharing the Redis instance.
const PageCachePrefix = "page:"

// RedisPageCache implements PageCache on Redis, so cached page bodies
// survive process restarts and are shared across replicas.
type RedisPageCache struct {
	client *redis.Client
}

// NewRedisPageCache creates a PageCache backed by Redis.
func NewRedisPageCache(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{client: client}
}

func (c *RedisPageCache) GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, bool, error) {
	fullKey := PageCachePrefix + key

	data, err := c.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return data, true, nil
	}
	if err != redis.Nil {
		// Redis being down should not take the page down with it; render
		// uncached and report the miss.
		log.Printf("[PageCache] Get FAILED: key=%s err=%v", fullKey, err)
	}

	data, err = render()
	if err != nil {
		return nil, false, err
	}

	if err := c.client.Set(ctx, fullKey, data, ttl).Err(); err != nil {
		log.Printf("[PageCache] Set FAILED: key=%s err=%v", fullKey, err)
	}

	return data, false, nil
}

// Clear scans and deletes every key under the page prefix.
func (c *RedisPageCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, PageCachePrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan page cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear page cache: %w", err)
	}

	log.Printf("[PageCache] Cleared %d entries", len(keys))
	return nil
}
