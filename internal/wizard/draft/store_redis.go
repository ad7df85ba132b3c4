package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vetform/pkg/platform/sentinel"
)

// RedisStore is the production draft store for deployments with more than one
// instance. Key expiry doubles as draft retention.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed draft store. The client lifecycle is
// managed by the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("draft key %s: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get draft key %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set draft key %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete draft key %s: %w", key, err)
	}
	return nil
}
