package kvstore

import (
	"context"

	"artisan/config"
	"artisan/internal/domain/repository"
	"artisan/internal/errors"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps each key as a plain string. SET replaces the value in one
// command, so a reader never sees a partial blob.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisClient creates a client for the configured Redis server.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisStore returns a store that namespaces keys with prefix.
func NewRedisStore(client *redis.Client, prefix string) repository.KeyValueStore {
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, "failed to get %s", key)
	}

	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to set %s", key)
	}

	return nil
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Wrapf(err, "failed to remove %s", key)
	}

	return nil
}
