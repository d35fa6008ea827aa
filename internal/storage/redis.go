package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	// RedisKeyPrefix namespaces every document key in Redis
	RedisKeyPrefix = "mindcare:"
)

// RedisStore stores documents as plain Redis strings without expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves a document; a missing key maps to ErrNotFound
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, RedisKeyPrefix+key, value, 0).Err()
}

// SetMulti wraps the writes in MULTI/EXEC so readers never observe half a batch
func (s *RedisStore) SetMulti(ctx context.Context, values map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, RedisKeyPrefix+k, v, 0)
		}
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, RedisKeyPrefix+key).Err()
}

// Close is a no-op; the shared client is closed by database.DisconnectRedis.
func (s *RedisStore) Close() error { return nil }
