package cache

import (
	"context"
	"encoding/json"
	"time"

	"dtwitter/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Store is the key-value capability the read paths and the invalidation
// coordinator depend on. Invalidate is idempotent: dropping an absent key is
// a no-op, never an error. Invalidation only removes; repopulation happens
// lazily on the next read.
type Store interface {
	// Get unmarshals the cached value into dest. It returns (false, nil) on
	// a miss: never set, explicitly invalidated, or past its TTL.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set overwrites any existing entry and restarts its TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Invalidate removes the entries if present.
	Invalidate(ctx context.Context, keys ...string) error
}

// redisStore is the server-side Store backed by Redis with a JSON codec.
// A nil client degrades to a store where every read misses and every write
// succeeds, so the application keeps working without Redis.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// DefaultStore returns a Store over the package-level Redis client
// initialized by InitRedis.
func DefaultStore() Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	if s.client == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

func (s *redisStore) Invalidate(ctx context.Context, keys ...string) error {
	if s.client == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Aside tries the store first; on miss it calls fetch (which must write into
// dest) and then populates the store with ttl. Cache population is the read
// path's responsibility, never the write path's. Store errors degrade to a
// fetch, they never fail the read.
func Aside(ctx context.Context, store Store, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := store.Get(ctx, key, dest)
	if err == nil && found {
		observability.CacheReads.WithLabelValues("hit").Inc()
		return nil
	}
	observability.CacheReads.WithLabelValues("miss").Inc()

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = store.Set(ctx, key, dest, ttl)
	return nil
}
