package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis INCR + EXPIRE, giving multiple
// instances a shared submission budget without changing the algorithm.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:submission:"}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	redisKey := s.prefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("incr rate limit key: %w", err)
	}

	// First hit in a window owns setting the expiry.
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("expire rate limit key: %w", err)
		}
		return int(count), time.Now().Add(window), nil
	}

	ttl, err := s.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ttl rate limit key: %w", err)
	}
	if ttl < 0 {
		// Key lost its expiry (e.g. a crashed first writer); restore it so the
		// bucket cannot grow forever.
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("expire rate limit key: %w", err)
		}
		ttl = window
	}
	return int(count), time.Now().Add(ttl), nil
}
