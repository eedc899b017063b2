// Package redis is a kvstore backend on a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/heartmarshall/postcards-home/internal/adapter/kvstore"
	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// Store keeps each key as a plain Redis string without expiry.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects to the server described by cfg and pings it.
func New(ctx context.Context, cfg config.RedisStorageConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return &Store{client: client, prefix: cfg.KeyPrefix}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return nil, mapError(err, key)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return mapError(err, key)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// mapError turns redis.Nil into domain.ErrNotFound and server OOM replies
// (maxmemory reached) into kvstore.ErrQuotaExceeded.
func mapError(err error, key string) error {
	switch {
	case errors.Is(err, redis.Nil):
		return fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	case strings.HasPrefix(err.Error(), "OOM "):
		return fmt.Errorf("key %s: %w: %w", key, kvstore.ErrQuotaExceeded, err)
	default:
		return fmt.Errorf("key %s: %w", key, err)
	}
}
