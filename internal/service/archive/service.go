package archive

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/postcards-home/internal/config"
)

// DataKey is the storage key holding the archive as one JSON array.
const DataKey = "postcards_home_data"

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type recorder interface {
	CorruptState()
	WriteRetried()
	StorageExhausted()
	ArchiveSize(n int)
}

// Service is the bounded, newest-first postcard archive.
type Service struct {
	store     kvStore
	metrics   recorder
	log       *slog.Logger
	maxStored int
	retryKeep int
	now       func() time.Time

	// mu serializes read-modify-write cycles of Insert within the process.
	mu sync.Mutex
}

// NewService creates a new Archive service. metrics may be nil.
func NewService(
	log *slog.Logger,
	store kvStore,
	cfg config.ArchiveConfig,
	metrics recorder,
) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		store:     store,
		metrics:   metrics,
		log:       log.With("service", "archive"),
		maxStored: cfg.MaxStored,
		retryKeep: cfg.RetryKeep,
		now:       time.Now,
	}
}

type nopRecorder struct{}

func (nopRecorder) CorruptState()     {}
func (nopRecorder) WriteRetried()     {}
func (nopRecorder) StorageExhausted() {}
func (nopRecorder) ArchiveSize(int)   {}
