package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore guards checkout starts carrying an Idempotency-Key
// header. SetOnce returns false when the key was already claimed.
type IdempotencyStore interface {
	SetOnce(ctx context.Context, key string) (bool, error)
}

// RedisIdempotencyStore claims keys with SetNX so the guard holds across
// gateway instances.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

func (s *RedisIdempotencyStore) SetOnce(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, "checkout:idem:"+key, 1, s.ttl).Result()
}

// InMemoryIdempotencyStore is the single-instance fallback and test double.
type InMemoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{seen: make(map[string]struct{})}
}

func (s *InMemoryIdempotencyStore) SetOnce(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}
