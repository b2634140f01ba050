package main

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-items/internal/redis"
	"github.com/KirkDiggler/rpg-items/internal/repositories/itemstore"
	"github.com/KirkDiggler/rpg-items/internal/storage"
)

const (
	pingAttempts = 3
	pingDelay    = 100 * time.Millisecond
)

// buildService wires the configured store into the item orchestrator. The
// returned cleanup releases backend connections.
func buildService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (item.Service, func() error, error) {
	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	repo, err := itemstore.New(&itemstore.Config{Store: store})
	if err != nil {
		_ = cleanup()
		return nil, nil, errors.Wrap(err, "failed to create item repository")
	}

	service, err := item.NewOrchestrator(&item.Config{
		ItemRepo:    repo,
		IDGenerator: idgen.NewUUID(""),
		Logger:      logger,
	})
	if err != nil {
		_ = cleanup()
		return nil, nil, errors.Wrap(err, "failed to create item orchestrator")
	}

	logger.Debug().Str("backend", string(cfg.Store.Backend)).Msg("item service ready")
	return service, cleanup, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), noop, nil

	case config.BackendFile:
		store, err := storage.NewFile(&storage.FileConfig{Path: cfg.Store.Path})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open file store")
		}
		return store, noop, nil

	case config.BackendRedis:
		client, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{
			PoolSize: cfg.Redis.PoolSize,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
			UseTLS:   cfg.Redis.UseTLS,
		})
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}

		err = retry.Do(
			func() error { return client.Ping(ctx).Err() },
			retry.Context(ctx),
			retry.Attempts(pingAttempts),
			retry.Delay(pingDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			_ = client.Close()
			return nil, nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis %s is unreachable", cfg.Redis.Endpoint)
		}

		store, err := storage.NewRedis(&storage.RedisConfig{
			Client:    client,
			KeyPrefix: cfg.Store.KeyPrefix,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrap(err, "failed to create redis store")
		}
		return store, client.Close, nil

	default:
		return nil, nil, errors.InvalidArgumentf("unknown store backend %q", cfg.Store.Backend)
	}
}
