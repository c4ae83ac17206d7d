package otp

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "drovo:otp:"

// RedisStore keeps codes in redis with a TTL, so every instance behind a load
// balancer sees the same code and restarts do not invalidate in-flight signups.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Put(ctx context.Context, email, code string) error {
	if err := s.rdb.Set(ctx, keyPrefix+email, code, TTL).Err(); err != nil {
		return fmt.Errorf("otp/redis: put: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, bool) {
	code, err := s.rdb.Get(ctx, keyPrefix+email).Result()
	if err != nil {
		return "", false
	}
	return code, true
}

func (s *RedisStore) Forget(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("otp/redis: forget: %w", err)
	}
	return nil
}
