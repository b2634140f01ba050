package storage

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-items/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-items/internal/redis"
)

// RedisConfig contains configuration for the Redis store
type RedisConfig struct {
	Client redisclient.Client
	// KeyPrefix is prepended to every key, e.g. "rpg-items:"
	KeyPrefix string
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisStore struct {
	client    redisclient.Client
	keyPrefix string
}

// NewRedis creates a Redis-backed store. Values are written without expiry.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisStore{
		client:    cfg.Client,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.InvalidArgument(errKeyEmpty)
	}

	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get %s from redis", key)
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.InvalidArgument(errKeyEmpty)
	}

	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to set %s in redis", key)
	}
	return nil
}
