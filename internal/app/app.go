package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/postcards-home/internal/adapter/imaging"
	"github.com/heartmarshall/postcards-home/internal/adapter/mqtt"
	"github.com/heartmarshall/postcards-home/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/postcards-home/internal/adapter/provider/gemini"
	"github.com/heartmarshall/postcards-home/internal/adapter/provider/guard"
	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
	"github.com/heartmarshall/postcards-home/internal/metrics"
	"github.com/heartmarshall/postcards-home/internal/service/archive"
	"github.com/heartmarshall/postcards-home/internal/service/compose"
	"github.com/heartmarshall/postcards-home/internal/service/feed"
	"github.com/heartmarshall/postcards-home/internal/service/identity"
	"github.com/heartmarshall/postcards-home/internal/service/specimen"
	"github.com/heartmarshall/postcards-home/internal/transport/middleware"
	"github.com/heartmarshall/postcards-home/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// storage backend, wires the services and serves HTTP until ctx is done.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("storage", cfg.Storage.Backend),
		slog.Bool("text_collaborator", cfg.Collaborators.Anthropic.Enabled()),
		slog.Bool("image_collaborator", cfg.Collaborators.Gemini.Enabled()),
		slog.Bool("mqtt", cfg.MQTT.Enabled()),
	)

	srv, cleanup, err := Build(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return Serve(ctx, logger, srv, cfg.Server)
}

// Build wires every component described by cfg and returns the HTTP
// server plus a cleanup func releasing storage and broker connections.
func Build(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*http.Server, func(), error) {
	store, err := OpenStorage(ctx, logger, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	household := domain.Household{
		Members:         cfg.Household.Members(),
		DefaultIdentity: cfg.Household.DefaultIdentity,
	}

	m := metrics.New()

	archiveSvc := archive.NewService(logger, store, cfg.Archive, m)
	identitySvc := identity.NewService(logger, store, household)
	feedSvc := feed.NewService(logger, archiveSvc)

	composeDeps := compose.Deps{
		Compressor: imaging.NewCompressor(cfg.Compose.ImageMaxDimension, cfg.Compose.ImageQuality),
		Metrics:    m,
	}
	specimenDeps := specimen.Deps{Metrics: m}

	collab := cfg.Collaborators
	if collab.Anthropic.Enabled() {
		g := guard.New(logger, "anthropic", collab.Breaker, collab.RatePerSecond, m)
		text := guard.NewText(anthropic.NewProvider(logger, collab.Anthropic), g)
		composeDeps.Polisher = text
		specimenDeps.Text = text
	}
	if collab.Gemini.Enabled() {
		provider, err := gemini.NewProvider(ctx, logger, collab.Gemini)
		if err != nil {
			store.Close() //nolint:errcheck
			return nil, nil, err
		}
		g := guard.New(logger, "gemini", collab.Breaker, collab.RatePerSecond, m)
		images := guard.NewImages(provider, g)
		composeDeps.Images = images
		specimenDeps.Images = images
		specimenDeps.Editor = images
	}

	var notifier *mqtt.Notifier
	if cfg.MQTT.Enabled() {
		notifier, err = mqtt.Connect(ctx, logger, cfg.MQTT, household)
		if err != nil {
			store.Close() //nolint:errcheck
			return nil, nil, err
		}
		composeDeps.Notifier = notifier
	}

	composeSvc := compose.NewService(logger, archiveSvc, cfg.Compose, composeDeps)
	specimenSvc := specimen.NewService(logger, cfg.Compose.PlaceholderImageURL, specimenDeps)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handler := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(store, cfg.Storage.Backend, BuildVersion()),
		Postcards: rest.NewPostcardHandler(feedSvc, composeSvc, logger),
		Widget:    rest.NewWidgetHandler(feedSvc, cfg.Widget.PublicBaseURL, logger),
		Identity:  rest.NewIdentityHandler(identitySvc, logger),
		Specimens: rest.NewSpecimenHandler(specimenSvc, logger),
	}, rest.RouterOptions{
		Outer: middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.Identity(identitySvc),
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
		),
		Inner:        []middleware.Middleware{m.Instrument},
		WriteLimit:   limiter.Limit(cfg.RateLimit.ComposePerMinute),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Metrics:      m.Handler(),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	cleanup := func() {
		limiter.Stop()
		if notifier != nil {
			notifier.Close()
		}
		if err := store.Close(); err != nil {
			logger.Warn("close storage", slog.String("error", err.Error()))
		}
	}
	return srv, cleanup, nil
}

// Serve runs srv until ctx is cancelled, then shuts it down within
// cfg.ShutdownTimeout.
func Serve(ctx context.Context, logger *slog.Logger, srv *http.Server, cfg config.ServerConfig) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}
