// Package file is a kvstore backend that keeps one file per key in a
// directory. Writes go through a temp file and a rename so readers never
// observe a partial value.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/heartmarshall/postcards-home/internal/adapter/kvstore"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store persists values under dir as <key>.json.
type Store struct {
	dir string
}

// New creates dir if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrValidation)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return mapError(err, key)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(value); err != nil {
		tmp.Close() //nolint:errcheck
		return mapError(err, key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return mapError(err, key)
	}
	if err := tmp.Close(); err != nil {
		return mapError(err, key)
	}

	if err := os.Rename(tmpName, p); err != nil {
		return mapError(err, key)
	}
	return nil
}

// Ping checks that the directory is still there.
func (s *Store) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat storage dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func mapError(err error, key string) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("write key %s: %w: %w", key, kvstore.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("write key %s: %w", key, err)
}
