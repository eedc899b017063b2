package specimen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// OxidizeResult is the outcome of an image edit.
type OxidizeResult struct {
	ImageURL string `json:"imageUrl"`
	Edited   bool   `json:"edited"`
}

// Oxidize asks the image editor to weather dataURL. When the editor is
// missing or fails the input image is returned unchanged.
func (s *Service) Oxidize(ctx context.Context, dataURL, instructions string) (OxidizeResult, error) {
	if !strings.HasPrefix(dataURL, "data:image/") || !strings.Contains(dataURL, ";base64,") {
		return OxidizeResult{}, domain.NewValidationError("image", "must be a base64 image data URL")
	}
	if s.editor == nil {
		return OxidizeResult{ImageURL: dataURL}, nil
	}

	out, err := s.editor.EditImage(ctx, dataURL, oxidizePrompt(strings.TrimSpace(instructions)))
	if err != nil || out == "" {
		s.metrics.CollaboratorFallback("image")
		s.log.WarnContext(ctx, "oxidize failed, keeping original image",
			slog.Any("error", err),
		)
		return OxidizeResult{ImageURL: dataURL}, nil
	}
	return OxidizeResult{ImageURL: out, Edited: true}, nil
}

func oxidizePrompt(instructions string) string {
	return fmt.Sprintf("Modify this specimen image. Add structural oxidation, rust stains, "+
		"or additional naturalist markings. Instruction: %s", instructions)
}
