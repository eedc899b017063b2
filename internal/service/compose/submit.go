package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/postcards-home/internal/domain"
	"github.com/heartmarshall/postcards-home/pkg/ctxutil"
)

func newPostcardID() string { return uuid.New().String() }

// Validate runs every submission check, including the ones that depend on
// the active identity and on configured collaborators.
func (s *Service) Validate(ctx context.Context, in SubmitInput) error {
	errs := in.fieldErrors(s.cfg.MaxMessageLength)

	if strings.TrimSpace(in.ImageURL) == "" && strings.TrimSpace(in.ImagePrompt) != "" && s.images == nil {
		errs = append(errs, domain.FieldError{Field: "image", Message: "image generation is not configured"})
	}

	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		errs = append(errs, domain.FieldError{Field: "sender", Message: "no active identity"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Submit validates in, assembles the postcard as the active identity and
// inserts it into the archive. Nothing is stored when validation fails.
// Collaborator failures fall back to user input or placeholders and never
// fail the submission.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Postcard, error) {
	if err := s.Validate(ctx, in); err != nil {
		return nil, err
	}
	sender, _ := ctxutil.IdentityFromCtx(ctx)

	message := prepareMessage(in.Message, s.cfg.MaxMessageLength)
	if in.Polish {
		message = s.polish(ctx, message).Message
	}

	now := s.now()
	p := domain.Postcard{
		ID:         s.newID(),
		Sender:     sender,
		Recipients: domain.NormalizeRecipients(in.Recipients),
		Message:    message,
		Location:   s.resolveLocation(in),
		ImageURL:   s.compress(ctx, s.resolveImage(ctx, in)),
		Timestamp:  now.UnixMilli(),
		Date:       domain.FormatDate(now),
	}

	if err := s.archive.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert postcard: %w", err)
	}
	s.metrics.PostcardComposed()

	s.log.InfoContext(ctx, "postcard dispatched",
		slog.String("postcard_id", p.ID),
		slog.String("sender", p.Sender),
		slog.Any("recipients", p.Recipients),
		slog.Int("image_bytes", len(p.ImageURL)),
	)

	if s.notifier != nil {
		if err := s.notifier.PostcardDispatched(ctx, p); err != nil {
			s.log.WarnContext(ctx, "dispatch notification failed",
				slog.String("postcard_id", p.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return &p, nil
}

func (s *Service) resolveImage(ctx context.Context, in SubmitInput) string {
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		return url
	}

	img, err := s.images.GenerateImage(ctx, strings.TrimSpace(in.ImagePrompt))
	if err != nil || img == "" {
		s.metrics.CollaboratorFallback("image")
		s.log.WarnContext(ctx, "image generation failed, using placeholder",
			slog.Any("error", err),
		)
		return s.cfg.PlaceholderImageURL
	}
	return img
}

func (s *Service) compress(ctx context.Context, img string) string {
	if s.compressor == nil || !strings.HasPrefix(img, "data:") {
		return img
	}

	out, err := s.compressor.Compress(ctx, img)
	if err != nil {
		s.log.WarnContext(ctx, "image compression failed, storing original",
			slog.Int("bytes", len(img)),
			slog.String("error", err.Error()),
		)
		return img
	}
	return out
}

func (s *Service) resolveLocation(in SubmitInput) string {
	if loc := strings.TrimSpace(in.Location); loc != "" {
		return loc
	}
	if in.Latitude != nil && in.Longitude != nil {
		return FormatCoordinates(*in.Latitude, *in.Longitude)
	}
	return s.cfg.DefaultLocation
}

// FormatCoordinates renders a position the way postcards display it.
func FormatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.2f°N, %.2f°E", lat, lng)
}
