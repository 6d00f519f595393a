package api

import (
	"encoding/json"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError logs msg with the request id and answers with a JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	ctx := r.Context()
	switch {
	case err != nil:
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	case status >= http.StatusInternalServerError:
		logger.Error(ctx, "❌  "+msg)
	default:
		logger.Warn(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, r, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(r.Context(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, r *http.Request, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(r.Context(), "❌  Failed to write JSON payload: %v", err)
	}
}
