package identity

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const usedTokenPrefix = "pwreset:used:"

// RedisUsedTokenStore implements UsedTokenStore on redis. SETNX with a TTL
// equal to the remaining token life gives an atomic first-use check that
// cleans up after itself.
type RedisUsedTokenStore struct {
	client *redis.Client
}

func NewRedisUsedTokenStore(client *redis.Client) *RedisUsedTokenStore {
	return &RedisUsedTokenStore{client: client}
}

func (s *RedisUsedTokenStore) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, usedTokenPrefix+jti, 1, ttl).Result()
}

func (s *RedisUsedTokenStore) Unmark(ctx context.Context, jti string) error {
	return s.client.Del(ctx, usedTokenPrefix+jti).Err()
}
