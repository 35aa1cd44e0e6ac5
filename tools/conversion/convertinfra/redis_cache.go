package convertinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/toolomni/engine/tools/conversion"
)

// DefaultMetadataTTL bounds how long resolved video metadata stays cached.
// Upstream playback URLs expire, so the window is short.
const DefaultMetadataTTL = 15 * time.Minute

// RedisMetadataCache implements conversion.MetadataCache on Redis.
type RedisMetadataCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMetadataCache creates a cache. A non-positive ttl falls back to
// DefaultMetadataTTL.
func NewRedisMetadataCache(client *redis.Client, ttl time.Duration) *RedisMetadataCache {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &RedisMetadataCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(url string) string {
	return "convert:video:" + url
}

// Get returns cached metadata for url, or (nil, nil) on a miss.
func (c *RedisMetadataCache) Get(ctx context.Context, url string) (*conversion.VideoMetadata, error) {
	val, err := c.client.Get(ctx, cacheKey(url)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", url, err)
	}

	var meta conversion.VideoMetadata
	if err := json.Unmarshal([]byte(val), &meta); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", url, err)
	}
	return &meta, nil
}

// Set stores metadata for url with the configured TTL.
func (c *RedisMetadataCache) Set(ctx context.Context, url string, meta *conversion.VideoMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", url, err)
	}
	if err := c.client.Set(ctx, cacheKey(url), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", url, err)
	}
	return nil
}
