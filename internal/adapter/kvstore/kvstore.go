// Package kvstore defines the key-value contract shared by every storage
// backend and a quota decorator that bounds the size of stored values.
package kvstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned by Set when a backend refuses a value because
// of its size or the backend's capacity.
var ErrQuotaExceeded = errors.New("kvstore: quota exceeded")

// Store is a string-keyed blob store. Get returns an error wrapping
// domain.ErrNotFound when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Quota rejects values larger than a fixed byte budget before they reach
// the wrapped store.
type Quota struct {
	Store
	maxBytes int
}

// WithQuota wraps s so that Set fails with ErrQuotaExceeded for values
// longer than maxBytes. A non-positive maxBytes returns s unchanged.
func WithQuota(s Store, maxBytes int) Store {
	if maxBytes <= 0 {
		return s
	}
	return &Quota{Store: s, maxBytes: maxBytes}
}

// Set implements Store.
func (q *Quota) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > q.maxBytes {
		return fmt.Errorf("set %s: %d bytes over %d byte limit: %w", key, len(value), q.maxBytes, ErrQuotaExceeded)
	}
	return q.Store.Set(ctx, key, value)
}
