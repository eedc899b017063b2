package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// Insert prepends p and keeps at most MaxStored records, evicting the
// oldest. If the store rejects the write, it retries once with only the
// RetryKeep newest records. When that also fails the archive is left as
// it was and the error wraps domain.ErrStorageExhausted.
func (s *Service) Insert(ctx context.Context, p domain.Postcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.List(ctx)

	next := make([]domain.Postcard, 0, len(current)+1)
	next = append(next, p)
	next = append(next, current...)
	next = truncate(next, s.maxStored)

	err := s.write(ctx, next)
	if err == nil {
		s.metrics.ArchiveSize(len(next))
		s.log.InfoContext(ctx, "postcard archived",
			slog.String("postcard_id", p.ID),
			slog.String("sender", p.Sender),
			slog.Int("stored", len(next)),
		)
		return nil
	}

	s.metrics.WriteRetried()
	s.log.WarnContext(ctx, "archive write rejected, retrying with reduced history",
		slog.String("postcard_id", p.ID),
		slog.Int("attempted", len(next)),
		slog.Int("retry_keep", s.retryKeep),
		slog.String("error", err.Error()),
	)

	reduced := truncate(next, s.retryKeep)
	if err := s.write(ctx, reduced); err != nil {
		s.metrics.StorageExhausted()
		s.log.ErrorContext(ctx, "archive write failed after retry",
			slog.String("postcard_id", p.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", domain.ErrStorageExhausted, err)
	}

	s.metrics.ArchiveSize(len(reduced))
	s.log.InfoContext(ctx, "postcard archived with reduced history",
		slog.String("postcard_id", p.ID),
		slog.Int("stored", len(reduced)),
	)
	return nil
}

func (s *Service) write(ctx context.Context, list []domain.Postcard) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := s.store.Set(ctx, DataKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", DataKey, err)
	}
	return nil
}

func truncate(list []domain.Postcard, limit int) []domain.Postcard {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
