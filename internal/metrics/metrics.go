// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "postcards"

// Metrics records archive, compose, collaborator and HTTP metrics on its
// own registry.
type Metrics struct {
	registry *prometheus.Registry

	corruptState     prometheus.Counter
	writeRetries     prometheus.Counter
	storageExhausted prometheus.Counter
	archiveSize      prometheus.Gauge
	composed         prometheus.Counter
	fallbacks        *prometheus.CounterVec
	breakerOpen      *prometheus.GaugeVec

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates Metrics and registers every collector, including the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		corruptState: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "corrupt_state_total",
			Help:      "Reads that found unreadable or malformed archive data.",
		}),
		writeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "write_retries_total",
			Help:      "Archive writes retried with reduced history.",
		}),
		storageExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "storage_exhausted_total",
			Help:      "Inserts rejected after the reduced retry failed.",
		}),
		archiveSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "postcards",
			Help:      "Postcards in the archive after the last successful write.",
		}),
		composed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compose",
			Name:      "postcards_total",
			Help:      "Postcards composed and stored.",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collaborator",
			Name:      "fallbacks_total",
			Help:      "Collaborator failures recovered with fallback content.",
		}, []string{"collaborator"}),
		breakerOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "collaborator",
			Name:      "breaker_open",
			Help:      "1 while the collaborator circuit breaker is open.",
		}, []string{"collaborator"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.corruptState,
		m.writeRetries,
		m.storageExhausted,
		m.archiveSize,
		m.composed,
		m.fallbacks,
		m.breakerOpen,
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) CorruptState()     { m.corruptState.Inc() }
func (m *Metrics) WriteRetried()     { m.writeRetries.Inc() }
func (m *Metrics) StorageExhausted() { m.storageExhausted.Inc() }
func (m *Metrics) ArchiveSize(n int) { m.archiveSize.Set(float64(n)) }
func (m *Metrics) PostcardComposed() { m.composed.Inc() }

func (m *Metrics) CollaboratorFallback(collaborator string) {
	m.fallbacks.WithLabelValues(collaborator).Inc()
}

func (m *Metrics) CollaboratorState(name string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.breakerOpen.WithLabelValues(name).Set(v)
}

// Instrument is HTTP middleware recording request counts and durations,
// labelled by the chi route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern keeps label cardinality bounded for unmatched paths.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
