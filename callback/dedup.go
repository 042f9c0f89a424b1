package callback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a processed callback key is remembered.
const DefaultTTL = 24 * time.Hour

// Deduper remembers which callbacks were already handled.
type Deduper interface {
	// Claim records key and reports whether it was not seen before.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key.
	Release(ctx context.Context, key string) error
}

// MemoryDeduper is an in-process Deduper. Entries expire after ttl.
type MemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryDeduper returns a MemoryDeduper; ttl <= 0 selects DefaultTTL.
func NewMemoryDeduper(ttl time.Duration) *MemoryDeduper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryDeduper{seen: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

func (d *MemoryDeduper) Claim(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if exp, ok := d.seen[key]; ok && now.Before(exp) {
		return false, nil
	}
	d.seen[key] = now.Add(d.ttl)
	d.sweep(now)
	return true, nil
}

func (d *MemoryDeduper) Release(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
	return nil
}

// sweep drops expired entries. Caller holds mu.
func (d *MemoryDeduper) sweep(now time.Time) {
	for k, exp := range d.seen {
		if !now.Before(exp) {
			delete(d.seen, k)
		}
	}
}

// RedisDeduper shares dedup state between receiver replicas.
type RedisDeduper struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisDeduper returns a Deduper storing keys under prefix with ttl.
func NewRedisDeduper(client redis.UniversalClient, prefix string, ttl time.Duration) (*RedisDeduper, error) {
	if client == nil {
		return nil, errors.New("gatefi callback: redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "gatefi:callback:"
	}
	return &RedisDeduper{client: client, prefix: prefix, ttl: ttl}, nil
}

func (d *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	return d.client.SetNX(ctx, d.prefix+key, 1, d.ttl).Result()
}

func (d *RedisDeduper) Release(ctx context.Context, key string) error {
	return d.client.Del(ctx, d.prefix+key).Err()
}
