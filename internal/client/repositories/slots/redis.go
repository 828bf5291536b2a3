package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each slot under prefix+key in Redis.
type RedisRepository struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisRepository uses client for all calls. timeout bounds every call
// when positive.
func NewRedisRepository(client *redis.Client, prefix string, timeout time.Duration) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix, timeout: timeout}
}

func (r *RedisRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *RedisRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string][]byte, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := r.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list slots: %w", err)
		}
		result[strings.TrimPrefix(k, r.prefix)] = v
	}
	return result, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	keys, err := r.scanKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	return nil
}

// Apply sends sets and deletes in one MULTI/EXEC transaction.
func (r *RedisRepository) Apply(ctx context.Context, sets map[string][]byte, deletes []string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range sets {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		for _, k := range deletes {
			pipe.Del(ctx, r.key(k))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply slot batch: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
