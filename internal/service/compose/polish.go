package compose

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// PolishResult is the outcome of a rewrite attempt.
type PolishResult struct {
	Message  string `json:"message"`
	Polished bool   `json:"polished"`
}

// Polish previews the rewrite of text. The returned message is always
// capped to the message length; when the collaborator is missing or fails
// it is the user's own text.
func (s *Service) Polish(ctx context.Context, text string) (PolishResult, error) {
	message := prepareMessage(text, s.cfg.MaxMessageLength)
	if message == "" {
		return PolishResult{}, domain.NewValidationError("message", "required")
	}
	return s.polish(ctx, message), nil
}

func (s *Service) polish(ctx context.Context, message string) PolishResult {
	if s.polisher == nil {
		return PolishResult{Message: message}
	}

	rewritten, err := s.polisher.PolishMessage(ctx, message)
	if err != nil {
		s.metrics.CollaboratorFallback("text")
		s.log.WarnContext(ctx, "message polish failed, keeping user text",
			slog.String("error", err.Error()),
		)
		return PolishResult{Message: message}
	}

	rewritten = prepareMessage(strings.Trim(strings.TrimSpace(rewritten), "\"“”"), s.cfg.MaxMessageLength)
	if rewritten == "" {
		return PolishResult{Message: message}
	}
	return PolishResult{Message: rewritten, Polished: true}
}
