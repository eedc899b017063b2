package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/postcards-home/internal/adapter/kvstore"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// MapError converts pgx/pgconn errors to domain and kvstore errors.
// context.DeadlineExceeded and context.Canceled pass through unmapped.
func MapError(err error, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("key %s: %w", key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22001", // string_data_right_truncation
			"53100", // disk_full
			"53200", // out_of_memory
			"54000": // program_limit_exceeded
			return fmt.Errorf("key %s: %w: %w", key, kvstore.ErrQuotaExceeded, err)
		case "23514": // check_violation
			return fmt.Errorf("key %s: %w", key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("key %s: %w", key, err)
}
