package specimen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// Generate describes and pictures subject concurrently. Collaborator
// failures degrade to fallback fields; only a blank subject or a
// cancelled context fail the call.
func (s *Service) Generate(ctx context.Context, subject string) (*domain.Specimen, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, domain.NewValidationError("subject", "required")
	}

	var (
		entry domain.SpecimenEntry
		image string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entry = s.describe(gctx, subject)
		return gctx.Err()
	})
	g.Go(func() error {
		image = s.picture(gctx, subject)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate specimen: %w", err)
	}

	sp := &domain.Specimen{
		ID:          s.newID(),
		Title:       entry.Title,
		Observation: entry.Observation,
		Coordinates: entry.Coordinates,
		Status:      entry.Status,
		ImageURL:    image,
		Date:        domain.FormatDate(s.now()),
	}

	s.log.InfoContext(ctx, "specimen generated",
		slog.String("specimen_id", sp.ID),
		slog.String("status", sp.Status.String()),
	)
	return sp, nil
}

func (s *Service) describe(ctx context.Context, subject string) domain.SpecimenEntry {
	var entry domain.SpecimenEntry
	if s.text != nil {
		var err error
		entry, err = s.text.DescribeSpecimen(ctx, subject)
		if err != nil {
			s.metrics.CollaboratorFallback("text")
			s.log.WarnContext(ctx, "specimen description failed, using defaults",
				slog.String("error", err.Error()),
			)
			entry = domain.SpecimenEntry{}
		}
	}
	return withDefaults(entry)
}

func (s *Service) picture(ctx context.Context, subject string) string {
	if s.images == nil {
		return s.placeholder
	}
	img, err := s.images.GenerateImage(ctx, imagePrompt(subject))
	if err != nil || img == "" {
		s.metrics.CollaboratorFallback("image")
		s.log.WarnContext(ctx, "specimen image failed, using placeholder",
			slog.Any("error", err),
		)
		return s.placeholder
	}
	return img
}

// withDefaults fills every blank or invalid field of e.
func withDefaults(e domain.SpecimenEntry) domain.SpecimenEntry {
	e.Title = strings.TrimSpace(e.Title)
	e.Observation = strings.TrimSpace(e.Observation)
	e.Coordinates = strings.TrimSpace(e.Coordinates)
	if e.Title == "" {
		e.Title = FallbackTitle
	}
	if e.Observation == "" {
		e.Observation = FallbackObservation
	}
	if e.Coordinates == "" {
		e.Coordinates = FallbackCoordinates
	}
	if !e.Status.IsValid() {
		e.Status = domain.SpecimenStatusArchived
	}
	return e
}

func imagePrompt(subject string) string {
	return fmt.Sprintf("A macro photography specimen of %s, naturalist scientific style, high contrast, "+
		"monochrome with subtle sepia tones, detailed textures, on a neutral vintage vellum background, "+
		"structural and organic.", subject)
}
