package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// errorResponse is the JSON body of every non-2xx API response.
type errorResponse struct {
	Error  string              `json:"error"`
	Kind   domain.ErrorKind    `json:"kind,omitempty"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// writeDecodeError answers a body that could not be decoded.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, "request body required")
	default:
		writeError(w, http.StatusBadRequest, "invalid request body")
	}
}

// handleError maps a service error to a status code by its kind.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	resp := errorResponse{Kind: kind}

	status := http.StatusInternalServerError
	switch kind {
	case domain.KindValidationFailed:
		status = http.StatusBadRequest
		resp.Error = "validation failed"
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			resp.Fields = ve.Errors
		}
	case domain.KindStorageExhausted:
		status = http.StatusInsufficientStorage
		resp.Error = "storage is full, the postcard was not saved"
	case domain.KindCollaboratorUnavailable:
		status = http.StatusServiceUnavailable
		resp.Error = "generation service unavailable"
	case domain.KindNotFound:
		status = http.StatusNotFound
		resp.Error = "not found"
	default:
		resp.Error = "internal server error"
		resp.Kind = domain.KindInternal
	}

	if status >= 500 {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("kind", resp.Kind.String()),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, status, resp)
}
