package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"tripgen/internal/planner"
	mem "tripgen/pkg/memcache"
	"tripgen/pkg/metrics"
)

// SearchCache stores encoded search results. A miss is (nil, false, nil).
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisSearchCache struct {
	client *redis.Client
}

func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{client: client}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

type MemorySearchCache struct {
	store mem.TTLStore
}

func NewMemorySearchCache(store mem.TTLStore) *MemorySearchCache {
	return &MemorySearchCache{store: store}
}

func (c *MemorySearchCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.store.Get(key)
	return b, ok, nil
}

func (c *MemorySearchCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

// CachedSearcher memoises successful searches. Failures are never cached and
// a broken cache only costs a provider call.
type CachedSearcher struct {
	next  PlacesSearcher
	cache SearchCache
	ttl   time.Duration
}

func NewCachedSearcher(next PlacesSearcher, cache SearchCache, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{next: next, cache: cache, ttl: ttl}
}

func (s *CachedSearcher) Search(ctx context.Context, q PlaceQuery) ([]planner.Venue, error) {
	key := searchCacheKey(q)

	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("Places cache read failed for %s: %v", key, err)
	} else if ok {
		var venues []planner.Venue
		if err := json.Unmarshal(b, &venues); err == nil {
			metrics.PlacesCacheLookups.WithLabelValues("hit").Inc()
			return venues, nil
		}
		log.Printf("Places cache entry %s is corrupt, refetching", key)
	}
	metrics.PlacesCacheLookups.WithLabelValues("miss").Inc()

	venues, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(venues)
	if err != nil {
		return venues, nil
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		log.Printf("Places cache write failed for %s: %v", key, err)
	}
	return venues, nil
}

func searchCacheKey(q PlaceQuery) string {
	return fmt.Sprintf("places:%s|%s|%d",
		strings.ToLower(strings.TrimSpace(q.Query)),
		strings.ToLower(strings.TrimSpace(q.Near)),
		q.Limit)
}
