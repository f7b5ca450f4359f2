package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{
		client:  client,
		baseTTL: 7 * 24 * time.Hour,
	}
}

// RedisKV stores serialized carts keyed by session ID. Entries expire
// after roughly a week so abandoned carts do not accumulate.
type RedisKV struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisKV) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, cacheKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r RedisKV) Set(ctx context.Context, key, value string) error {
	jitter := time.Duration(rand.Intn(60)) * time.Minute
	if err := r.client.Set(ctx, cacheKey(key), value, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisKV) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
