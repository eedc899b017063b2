// Package guard wraps collaborator calls with a circuit breaker and a
// client-side rate limiter. Every failure it returns wraps
// domain.ErrCollaboratorUnavailable.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

type stateRecorder interface {
	CollaboratorState(name string, open bool)
}

// Guard protects one collaborator.
type Guard struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	log     *slog.Logger
}

// New creates a Guard. A non-positive ratePerSecond disables the limiter.
// states may be nil.
func New(log *slog.Logger, name string, cfg config.BreakerConfig, ratePerSecond float64, states stateRecorder) *Guard {
	log = log.With("adapter", "guard", "collaborator", name)

	g := &Guard{name: name, log: log}
	if ratePerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}
	g.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("collaborator breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if states != nil {
				states.CollaboratorState(name, to == gobreaker.StateOpen)
			}
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up is not a collaborator fault.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return g
}

// Name returns the collaborator name.
func (g *Guard) Name() string { return g.name }

// State returns the current breaker state.
func (g *Guard) State() gobreaker.State { return g.cb.State() }

// Call runs fn through g.
func Call[T any](ctx context.Context, g *Guard, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("%s: rate limit: %w: %w", g.name, domain.ErrCollaboratorUnavailable, err)
		}
	}

	out, err := g.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w: %w", g.name, domain.ErrCollaboratorUnavailable, err)
		}
		if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
		}
		return zero, fmt.Errorf("%s: %w", g.name, err)
	}
	return out.(T), nil
}
