package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
)

// Store keeps interpreted labels by normalized query.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// RedisStore is a Store backed by Redis string keys with a fixed TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached label. A missing key is a miss, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get error: %w", err)
	}
	return val, true, nil
}

// Set stores a label with the store TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryStore is an in-process Store used when no Redis address is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. A nil clock uses time.Now.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: now}
}

// Get returns the cached label if it has not expired.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if s.ttl > 0 && !s.now().Before(e.expires) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores a label.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, expires: s.now().Add(s.ttl)}
	return nil
}

// Stats counts cache outcomes.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Errors uint64 `json:"errors"`
}

// CachedInterpreter memoizes search interpretations. Concurrent lookups of
// the same query share one provider call. Failures are never cached.
type CachedInterpreter struct {
	next   SearchInterpreter
	store  Store
	group  singleflight.Group
	logger types.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
	errs   atomic.Uint64
}

var _ SearchInterpreter = (*CachedInterpreter)(nil)

// NewCachedInterpreter wraps next with store.
func NewCachedInterpreter(next SearchInterpreter, store Store, logger types.Logger) *CachedInterpreter {
	return &CachedInterpreter{next: next, store: store, logger: logger}
}

// InterpretSearch returns the cached label or asks the wrapped interpreter.
func (c *CachedInterpreter) InterpretSearch(ctx context.Context, query string) (string, error) {
	key := CacheKey(query)

	label, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.errs.Add(1)
		c.logger.Warn("Search cache read failed", "error", err)
	} else if found {
		c.hits.Add(1)
		return label, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		label, err := c.next.InterpretSearch(ctx, query)
		if err != nil {
			return "", err
		}
		if err := c.store.Set(ctx, key, label); err != nil {
			c.errs.Add(1)
			c.logger.Warn("Search cache write failed", "error", err)
		}
		return label, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Stats returns a snapshot of the counters.
func (c *CachedInterpreter) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Errors: c.errs.Load()}
}

// CacheKey normalizes a query so that case and spacing variants share an entry.
func CacheKey(query string) string {
	return "search:" + cases.Fold().String(strings.Join(strings.Fields(query), " "))
}
