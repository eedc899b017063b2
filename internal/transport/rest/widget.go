package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

type widgetService interface {
	WidgetData(ctx context.Context, name string) domain.WidgetData
	WidgetScript(ctx context.Context, name, baseURL string) (string, error)
}

// WidgetHandler serves the widget payload and the widget script.
type WidgetHandler struct {
	svc     widgetService
	baseURL string
	log     *slog.Logger
}

// NewWidgetHandler creates a WidgetHandler. An empty publicBaseURL makes
// the script point at the host the request came in on.
func NewWidgetHandler(svc widgetService, publicBaseURL string, logger *slog.Logger) *WidgetHandler {
	return &WidgetHandler{svc: svc, baseURL: publicBaseURL, log: logger.With("handler", "widget")}
}

// Data handles GET /api/widget?recipient=NAME.
func (h *WidgetHandler) Data(w http.ResponseWriter, r *http.Request) {
	name, ok := recipientParam(w, r)
	if !ok {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.svc.WidgetData(r.Context(), name))
}

// Script handles GET /api/widget/script?recipient=NAME.
func (h *WidgetHandler) Script(w http.ResponseWriter, r *http.Request) {
	name, ok := recipientParam(w, r)
	if !ok {
		return
	}

	script, err := h.svc.WidgetScript(r.Context(), name, h.publicBaseURL(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="postcards-widget.js"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(script))
}

func (h *WidgetHandler) publicBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

func recipientParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.URL.Query().Get("recipient"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Kind:   domain.KindValidationFailed,
			Fields: []domain.FieldError{{Field: "recipient", Message: "required"}},
		})
		return "", false
	}
	return name, true
}
