package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/postcards-home/internal/domain"
	"github.com/heartmarshall/postcards-home/internal/service/specimen"
)

type specimenService interface {
	Generate(ctx context.Context, subject string) (*domain.Specimen, error)
	Oxidize(ctx context.Context, dataURL, instructions string) (specimen.OxidizeResult, error)
}

// SpecimenHandler serves specimen generation and image oxidizing.
type SpecimenHandler struct {
	svc specimenService
	log *slog.Logger
}

// NewSpecimenHandler creates a SpecimenHandler.
func NewSpecimenHandler(svc specimenService, logger *slog.Logger) *SpecimenHandler {
	return &SpecimenHandler{svc: svc, log: logger.With("handler", "specimen")}
}

type specimenRequest struct {
	Subject string `json:"subject"`
}

type oxidizeRequest struct {
	ImageURL     string `json:"imageUrl"`
	Instructions string `json:"instructions"`
}

// Create handles POST /api/specimens.
func (h *SpecimenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req specimenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	sp, err := h.svc.Generate(r.Context(), req.Subject)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sp)
}

// Oxidize handles POST /api/images/oxidize.
func (h *SpecimenHandler) Oxidize(w http.ResponseWriter, r *http.Request) {
	var req oxidizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.svc.Oxidize(r.Context(), req.ImageURL, req.Instructions)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
