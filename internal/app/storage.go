package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/postcards-home/internal/adapter/kvstore"
	dynamostore "github.com/heartmarshall/postcards-home/internal/adapter/kvstore/dynamodb"
	filestore "github.com/heartmarshall/postcards-home/internal/adapter/kvstore/file"
	memorystore "github.com/heartmarshall/postcards-home/internal/adapter/kvstore/memory"
	redisstore "github.com/heartmarshall/postcards-home/internal/adapter/kvstore/redis"
	"github.com/heartmarshall/postcards-home/internal/adapter/postgres"
	"github.com/heartmarshall/postcards-home/internal/adapter/postgres/kv"
	"github.com/heartmarshall/postcards-home/internal/config"
)

// OpenStorage builds the key-value backend selected by cfg.Backend and
// applies the per-value quota.
func OpenStorage(ctx context.Context, logger *slog.Logger, cfg config.StorageConfig) (kvstore.Store, error) {
	store, err := openBackend(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	return kvstore.WithQuota(store, cfg.QuotaBytes), nil
}

func openBackend(ctx context.Context, logger *slog.Logger, cfg config.StorageConfig) (kvstore.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memorystore.New(), nil

	case config.BackendFile:
		return filestore.New(cfg.File.Dir)

	case config.BackendPostgres:
		if cfg.Postgres.AutoMigrate {
			applied, err := postgres.Migrate(ctx, cfg.Postgres.DSN)
			if err != nil {
				return nil, err
			}
			logger.Info("migrations applied", slog.Int("count", applied))
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return kv.New(pool, pool.Close), nil

	case config.BackendRedis:
		return redisstore.New(ctx, cfg.Redis)

	case config.BackendDynamoDB:
		return dynamostore.New(ctx, cfg.DynamoDB)

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
