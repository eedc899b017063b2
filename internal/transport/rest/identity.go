package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

type identityService interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, name string) error
	Household() domain.Household
	IsMember(name string) bool
}

// IdentityHandler serves the current identity and the household roster.
type IdentityHandler struct {
	svc identityService
	log *slog.Logger
}

// NewIdentityHandler creates an IdentityHandler.
func NewIdentityHandler(svc identityService, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{svc: svc, log: logger.With("handler", "identity")}
}

type identityRequest struct {
	Name string `json:"name"`
}

type identityResponse struct {
	Name   string `json:"name"`
	Member bool   `json:"member"`
}

type householdResponse struct {
	Broadcast       string   `json:"broadcast"`
	Members         []string `json:"members"`
	Everyone        []string `json:"everyone"`
	DefaultIdentity string   `json:"defaultIdentity"`
}

// Get handles GET /api/identity.
func (h *IdentityHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := h.svc.Get(r.Context())
	writeJSON(w, http.StatusOK, identityResponse{Name: name, Member: h.svc.IsMember(name)})
}

// Put handles PUT /api/identity.
func (h *IdentityHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.svc.Set(r.Context(), req.Name); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	name := h.svc.Get(r.Context())
	writeJSON(w, http.StatusOK, identityResponse{Name: name, Member: h.svc.IsMember(name)})
}

// Household handles GET /api/household.
func (h *IdentityHandler) Household(w http.ResponseWriter, r *http.Request) {
	hh := h.svc.Household()
	writeJSON(w, http.StatusOK, householdResponse{
		Broadcast:       domain.BroadcastRecipient,
		Members:         hh.Members,
		Everyone:        hh.Everyone(),
		DefaultIdentity: hh.DefaultIdentity,
	})
}
