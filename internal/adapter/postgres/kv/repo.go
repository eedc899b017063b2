// Package kv implements the key-value store on a single PostgreSQL table.
package kv

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/postcards-home/internal/adapter/postgres"
)

const table = "kv_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo stores values in kv_entries, one row per key.
type Repo struct {
	q       postgres.Querier
	closeFn func()
}

// New creates a repository over q. closeFn, if non-nil, runs on Close
// (typically pool.Close).
func New(q postgres.Querier, closeFn func()) *Repo {
	return &Repo{q: q, closeFn: closeFn}
}

// Get returns the value stored under key.
func (r *Repo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psql.
		Select("value").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var value string
	if err := r.q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return nil, postgres.MapError(err, key)
	}
	return []byte(value), nil
}

// Set upserts the value under key.
func (r *Repo) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := psql.
		Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, string(value), sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, key)
	}
	return nil
}

// Ping checks the database connection.
func (r *Repo) Ping(ctx context.Context) error {
	return r.q.Ping(ctx)
}

// Close releases the underlying pool.
func (r *Repo) Close() error {
	if r.closeFn != nil {
		r.closeFn()
	}
	return nil
}
