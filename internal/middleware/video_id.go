package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/api_context"
	"github.com/SharmaTechie/video-stream-platform/internal/handler/api"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/go-chi/chi/v5"
)

// WithVideoID parses the {id} URL parameter and stores it in the request context.
func WithVideoID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
				return
			}
			parsedID, err := uuid.Parse(id)
			if err != nil {
				api.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid UUID", id), nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.IDKey, parsedID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
