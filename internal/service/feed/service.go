package feed

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

type archiveReader interface {
	List(ctx context.Context) []domain.Postcard
}

// Service provides the read-side views over the archive: the shared feed
// and the per-recipient widget payload.
type Service struct {
	archive archiveReader
	log     *slog.Logger
}

// NewService creates a new Feed service.
func NewService(log *slog.Logger, archive archiveReader) *Service {
	return &Service{
		archive: archive,
		log:     log.With("service", "feed"),
	}
}

// Feed returns every stored postcard, newest first.
func (s *Service) Feed(ctx context.Context) []domain.Postcard {
	return s.archive.List(ctx)
}

// LatestFor returns the newest postcard addressed to name directly or to
// the whole family.
func (s *Service) LatestFor(ctx context.Context, name string) (domain.Postcard, bool) {
	for _, p := range s.archive.List(ctx) {
		if p.AddressedTo(name) {
			return p, true
		}
	}
	return domain.Postcard{}, false
}
