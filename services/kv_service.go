package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"jamaah_server/utils"
)

// KVStore is the flat key-value store every record namespace sits on.
// Get returns utils.ErrNotFound when the key is absent.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	GetByPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
}

// RedisKV implements KVStore on Redis. Prefix reads are a SCAN over
// prefix* followed by a single MGET.
type RedisKV struct {
	Client *redis.Client
}

// NewRedisKV builds a Redis-backed store.
func NewRedisKV(addr, password string) *RedisKV {
	return &RedisKV{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("key %q: %w", key, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return val, nil
}

func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *RedisKV) Delete(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *RedisKV) GetByPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	var keys []string
	iter := s.Client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan prefix %q: %w", prefix, err)
	}

	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget prefix %q: %w", prefix, err)
	}
	for i, v := range vals {
		// A key can vanish between SCAN and MGET; skip it.
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok {
			out[keys[i]] = []byte(str)
		}
	}
	return out, nil
}
