package compose

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type archiveWriter interface {
	Insert(ctx context.Context, p domain.Postcard) error
}

type textPolisher interface {
	PolishMessage(ctx context.Context, text string) (string, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type imageCompressor interface {
	Compress(ctx context.Context, dataURL string) (string, error)
}

type dispatchNotifier interface {
	PostcardDispatched(ctx context.Context, p domain.Postcard) error
}

type recorder interface {
	CollaboratorFallback(collaborator string)
	PostcardComposed()
}

// Deps groups the optional collaborators. Nil fields disable the feature.
type Deps struct {
	Polisher   textPolisher
	Images     imageGenerator
	Compressor imageCompressor
	Notifier   dispatchNotifier
	Metrics    recorder
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service turns user input into a stored postcard.
type Service struct {
	archive    archiveWriter
	polisher   textPolisher
	images     imageGenerator
	compressor imageCompressor
	notifier   dispatchNotifier
	metrics    recorder
	cfg        config.ComposeConfig
	log        *slog.Logger
	now        func() time.Time
	newID      func() string
}

// NewService creates a new Compose service.
func NewService(
	log *slog.Logger,
	archive archiveWriter,
	cfg config.ComposeConfig,
	deps Deps,
) *Service {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		archive:    archive,
		polisher:   deps.Polisher,
		images:     deps.Images,
		compressor: deps.Compressor,
		notifier:   deps.Notifier,
		metrics:    metrics,
		cfg:        cfg,
		log:        log.With("service", "compose"),
		now:        time.Now,
		newID:      newPostcardID,
	}
}

// CanGenerateImages reports whether an image generator is configured.
func (s *Service) CanGenerateImages() bool {
	return s.images != nil
}

type nopRecorder struct{}

func (nopRecorder) CollaboratorFallback(string) {}
func (nopRecorder) PostcardComposed()           {}
