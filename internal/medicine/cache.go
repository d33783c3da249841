package medicine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("lookup not cached")

// Cache stores substitute lookups keyed by search tag. The catalog changes
// rarely, so a short TTL is enough to absorb repeated searches.
type Cache interface {
	GetLookup(ctx context.Context, tag string) (*Lookup, error)
	SetLookup(ctx context.Context, tag string, lookup *Lookup) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func cacheKey(tag string) string {
	return "cache:substitutes:" + tag
}

func (c *redisCache) GetLookup(ctx context.Context, tag string) (*Lookup, error) {
	data, err := c.client.Get(ctx, cacheKey(tag)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get cached lookup: %w", err)
	}

	var lookup Lookup
	if err := json.Unmarshal(data, &lookup); err != nil {
		// A stale or corrupt entry is treated as a miss.
		return nil, ErrCacheMiss
	}

	return &lookup, nil
}

func (c *redisCache) SetLookup(ctx context.Context, tag string, lookup *Lookup) error {
	data, err := json.Marshal(lookup)
	if err != nil {
		return fmt.Errorf("marshal lookup: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(tag), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached lookup: %w", err)
	}
	return nil
}
