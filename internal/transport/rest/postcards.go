package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/postcards-home/internal/domain"
	"github.com/heartmarshall/postcards-home/internal/service/compose"
)

type feedService interface {
	Feed(ctx context.Context) []domain.Postcard
}

type composeService interface {
	Submit(ctx context.Context, in compose.SubmitInput) (*domain.Postcard, error)
	Polish(ctx context.Context, text string) (compose.PolishResult, error)
}

// PostcardHandler serves the feed and the compose endpoints.
type PostcardHandler struct {
	feed    feedService
	compose composeService
	log     *slog.Logger
}

// NewPostcardHandler creates a PostcardHandler.
func NewPostcardHandler(feed feedService, compose composeService, logger *slog.Logger) *PostcardHandler {
	return &PostcardHandler{feed: feed, compose: compose, log: logger.With("handler", "postcards")}
}

type submitRequest struct {
	Message     string   `json:"message"`
	Recipients  []string `json:"recipients"`
	ImageURL    string   `json:"imageUrl"`
	ImagePrompt string   `json:"imagePrompt"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Polish      bool     `json:"polish"`
}

type polishRequest struct {
	Message string `json:"message"`
}

type feedResponse struct {
	Postcards []domain.Postcard `json:"postcards"`
}

// List handles GET /api/postcards.
func (h *PostcardHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, feedResponse{Postcards: h.feed.Feed(r.Context())})
}

// Create handles POST /api/postcards.
func (h *PostcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.compose.Submit(r.Context(), compose.SubmitInput{
		Message:     req.Message,
		Recipients:  req.Recipients,
		ImageURL:    req.ImageURL,
		ImagePrompt: req.ImagePrompt,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Polish:      req.Polish,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Polish handles POST /api/postcards/polish.
func (h *PostcardHandler) Polish(w http.ResponseWriter, r *http.Request) {
	var req polishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.compose.Polish(r.Context(), req.Message)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
