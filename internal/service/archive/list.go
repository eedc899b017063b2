package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// List returns the archive newest first. It never fails: a missing key
// yields the seed record, and unreadable or malformed data is logged as
// corrupt state and also replaced by the seed record.
func (s *Service) List(ctx context.Context) []domain.Postcard {
	list, err := s.load(ctx)
	if err != nil {
		s.metrics.CorruptState()
		s.log.WarnContext(ctx, "archive unreadable, serving seed",
			slog.String("error", err.Error()),
		)
		return s.seed()
	}
	return list
}

func (s *Service) load(ctx context.Context) ([]domain.Postcard, error) {
	raw, err := s.store.Get(ctx, DataKey)
	if errors.Is(err, domain.ErrNotFound) {
		return s.seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCorruptState, DataKey, err)
	}

	var list []domain.Postcard
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrCorruptState, DataKey, err)
	}
	if list == nil {
		return nil, fmt.Errorf("%w: %s is null", domain.ErrCorruptState, DataKey)
	}

	if len(list) > s.maxStored {
		list = list[:s.maxStored]
	}
	return list, nil
}

func (s *Service) seed() []domain.Postcard {
	return []domain.Postcard{domain.SeedPostcard(s.now())}
}
