package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps session carts in Redis so multiple gateway instances
// can serve the same user. The TTL bounds the session lifetime; an idle cart
// simply expires.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func cartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (r *RedisRepository) Lines(ctx context.Context, userID int) ([]Line, error) {
	raw, err := r.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return []Line{}, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *RedisRepository) Save(ctx context.Context, userID int, lines []Line) error {
	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(userID), b, r.ttl).Err()
}

func (r *RedisRepository) Clear(ctx context.Context, userID int) error {
	return r.client.Del(ctx, cartKey(userID)).Err()
}
