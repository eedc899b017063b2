package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/postcards-home/internal/adapter/kvstore"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// UserKey is the storage key holding the current identity as a JSON string.
const UserKey = "postcards_current_user"

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Service stores the single active sender identity of this installation.
type Service struct {
	store     kvStore
	household domain.Household
	log       *slog.Logger
}

// NewService creates a new Identity service.
func NewService(log *slog.Logger, store kvStore, household domain.Household) *Service {
	return &Service{
		store:     store,
		household: household,
		log:       log.With("service", "identity"),
	}
}

// Get returns the persisted identity, or the household default when none
// has been set or the stored value is unreadable.
func (s *Service) Get(ctx context.Context) string {
	raw, err := s.store.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "identity unreadable, using default", slog.String("error", err.Error()))
		}
		return s.household.DefaultIdentity
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil || strings.TrimSpace(name) == "" {
		s.log.WarnContext(ctx, "identity malformed, using default", slog.String("raw", string(raw)))
		return s.household.DefaultIdentity
	}
	return name
}

// Set overwrites the identity. Any non-blank name is accepted; membership
// in the household is not checked.
func (s *Service) Set(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("name", "required")
	}

	raw, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.Set(ctx, UserKey, raw); err != nil {
		if errors.Is(err, kvstore.ErrQuotaExceeded) {
			return fmt.Errorf("write identity: %w: %w", domain.ErrStorageExhausted, err)
		}
		return fmt.Errorf("write identity: %w", err)
	}

	s.log.InfoContext(ctx, "identity changed",
		slog.String("name", name),
		slog.Bool("member", s.IsMember(name)),
	)
	return nil
}

// Household returns the configured member list.
func (s *Service) Household() domain.Household {
	return s.household
}

// IsMember reports whether name is one of the configured members.
func (s *Service) IsMember(name string) bool {
	for _, m := range s.household.Members {
		if m == name {
			return true
		}
	}
	return false
}
