package api

import (
	"errors"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/api_context"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
)

// DeleteVideoHandler deletes a video by ID.
func DeleteVideoHandler(svc port.VideoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteVideo(r.Context(), id); err != nil {
			if errors.Is(err, video.ErrVideoNotFound) {
				WriteError(w, r, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "Failed to delete video", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted video #%s", id)
	}
}
