package specimen

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type textDescriber interface {
	DescribeSpecimen(ctx context.Context, subject string) (domain.SpecimenEntry, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type imageEditor interface {
	EditImage(ctx context.Context, dataURL, instructions string) (string, error)
}

type recorder interface {
	CollaboratorFallback(collaborator string)
}

// Deps groups the optional collaborators. Nil fields fall back to defaults.
type Deps struct {
	Text    textDescriber
	Images  imageGenerator
	Editor  imageEditor
	Metrics recorder
}

// Fallback values used when a collaborator is missing or fails.
const (
	FallbackTitle       = "Untitled Specimen"
	FallbackObservation = "Analysis pending."
	FallbackCoordinates = "0.00° N, 0.00° W"
)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service generates naturalist specimen entries.
type Service struct {
	text        textDescriber
	images      imageGenerator
	editor      imageEditor
	metrics     recorder
	placeholder string
	log         *slog.Logger
	now         func() time.Time
	newID       func() string
}

// NewService creates a new Specimen service. placeholderImageURL is served
// when no image can be generated.
func NewService(log *slog.Logger, placeholderImageURL string, deps Deps) *Service {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		text:        deps.Text,
		images:      deps.Images,
		editor:      deps.Editor,
		metrics:     metrics,
		placeholder: placeholderImageURL,
		log:         log.With("service", "specimen"),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

type nopRecorder struct{}

func (nopRecorder) CollaboratorFallback(string) {}
