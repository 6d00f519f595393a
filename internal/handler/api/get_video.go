package api

import (
	"errors"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/api_context"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
)

func GetVideoHandler(renderer port.HTTPRenderer, svc port.VideoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderGetVideo(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, video.ErrVideoNotFound) {
				WriteError(w, r, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "Could not get video details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Video #%s not modified", id)
			return
		}

		RespondRawJSON(w, r, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for video #%s", id)
	}
}
