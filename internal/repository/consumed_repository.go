// Package repository holds the gate service's stores: the
// consumed-ticket seen-set that enforces single use, and the optional
// MySQL audit trail behind the live dashboard.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/festwine/tasting-gate/internal/clock"
)

const consumedKeyPrefix = "consumed:"

// RedisConsumedStore is the shared seen-set for deployments where
// many booths validate concurrently.  SET NX with a TTL equal to the
// ticket's remaining validity gives an atomic first-wins mark that
// expires itself once the ticket could no longer validate anyway.
type RedisConsumedStore struct {
	rdb *redis.Client
}

func NewRedisConsumedStore(rdb *redis.Client) *RedisConsumedStore {
	return &RedisConsumedStore{rdb: rdb}
}

// MarkConsumed returns true only for the first mark of ticketID.
func (s *RedisConsumedStore) MarkConsumed(ctx context.Context, ticketID string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, consumedKeyPrefix+ticketID, 1, ttl).Result()
}

// MemoryConsumedStore is the single-process fallback used when no
// Redis is configured, and in tests.  Entries are pruned lazily as
// they pass their expiry.
type MemoryConsumedStore struct {
	mu   sync.Mutex
	seen map[string]time.Time // ticket id -> entry expiry
	clk  clock.Clock
}

func NewMemoryConsumedStore(clk clock.Clock) *MemoryConsumedStore {
	return &MemoryConsumedStore{seen: make(map[string]time.Time), clk: clk}
}

// MarkConsumed returns true only for the first mark of a ticket id
// whose previous entry, if any, has already lapsed.
func (s *MemoryConsumedStore) MarkConsumed(_ context.Context, ticketID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	for id, exp := range s.seen {
		if now.After(exp) {
			delete(s.seen, id)
		}
	}
	if _, dup := s.seen[ticketID]; dup {
		return false, nil
	}
	s.seen[ticketID] = now.Add(ttl)
	return true, nil
}
