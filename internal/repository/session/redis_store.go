package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Lua script for compare-and-delete
// KEYS[1] = key
// ARGV[1] = expected value
// Returns: number of keys removed
const deleteIfValueScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisStore keeps session state in Redis so it survives restarts and is
// shared between instances.
type RedisStore struct {
	client *goredis.Client
	prefix string
}

func NewRedisStore(client *goredis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "site:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis session get failed: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis session set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis session delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis session setnx failed: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) DeleteIfValue(ctx context.Context, key, value string) error {
	if err := s.client.Eval(ctx, deleteIfValueScript, []string{s.prefix + key}, value).Err(); err != nil {
		return fmt.Errorf("redis session compare-delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Name() string { return "redis" }
