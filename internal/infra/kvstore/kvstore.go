// Package kvstore provides KeyValueStore implementations for client-owned state.
package kvstore

import (
	"context"
	"log/slog"
	"sync"

	"artisan/config"
	"artisan/internal/domain/constants"
	"artisan/internal/domain/repository"
	"artisan/internal/errors"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New builds the KeyValueStore selected by kv.driver.
func New(params Params) (repository.KeyValueStore, error) {
	cfg := params.Config.KV
	params.Logger.Info("Initializing key-value store", slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case constants.KVDriverMemory:
		return NewMemoryStore(), nil

	case constants.KVDriverFile:
		return NewFileStore(cfg.Dir)

	case constants.KVDriverRedis:
		if params.Config.Redis == nil {
			return nil, errors.New("redis configuration is required for the redis kv driver")
		}
		client := NewRedisClient(params.Config.Redis)
		params.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return errors.Wrap(err, "failed to ping Redis")
				}

				return nil
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})

		return NewRedisStore(client, params.Config.Redis.KeyPrefix), nil

	default:
		return nil, errors.Errorf("unknown kv driver: %s", cfg.Driver)
	}
}

// memoryStore keeps values in a map; it does not survive a restart.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() repository.KeyValueStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]

	return value, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

func (s *memoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}
