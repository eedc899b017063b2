package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/postcards-home/internal/transport/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Postcards *PostcardHandler
	Widget    *WidgetHandler
	Identity  *IdentityHandler
	Specimens *SpecimenHandler
}

// RouterOptions carries the cross-cutting pieces of the HTTP stack.
type RouterOptions struct {
	// Outer wraps the whole router: recovery, request IDs, logging, CORS.
	Outer middleware.Middleware
	// Inner runs after routing so route patterns are known.
	Inner []middleware.Middleware
	// WriteLimit guards the endpoints that store data or call collaborators.
	WriteLimit   middleware.Middleware
	MaxBodyBytes int64
	Metrics      http.Handler
}

// NewRouter mounts the API under /api and the health checks at the root.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	for _, mw := range opts.Inner {
		r.Use(mw)
	}

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	writes := passThrough
	if opts.WriteLimit != nil {
		writes = opts.WriteLimit
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(bodyLimit(opts.MaxBodyBytes))

		api.Get("/postcards", h.Postcards.List)
		api.With(writes).Post("/postcards", h.Postcards.Create)
		api.With(writes).Post("/postcards/polish", h.Postcards.Polish)

		api.Get("/widget", h.Widget.Data)
		api.Get("/widget/script", h.Widget.Script)

		api.Get("/identity", h.Identity.Get)
		api.Put("/identity", h.Identity.Put)
		api.Get("/household", h.Identity.Household)

		api.With(writes).Post("/specimens", h.Specimens.Create)
		api.With(writes).Post("/images/oxidize", h.Specimens.Oxidize)
	})

	if opts.Outer == nil {
		return r
	}
	return opts.Outer(r)
}

func passThrough(next http.Handler) http.Handler { return next }

func bodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
