package api

import (
	"errors"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/api_context"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
)

func GetThumbnailHandler(svc port.ThumbnailLocator, streamer port.ObjectStreamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
			return
		}

		objID, err := svc.LocateThumbnail(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, video.ErrVideoNotFound):
				WriteError(w, r, http.StatusNotFound, "Video not found", nil)
			case errors.Is(err, video.ErrNoThumbnail):
				WriteError(w, r, http.StatusNotFound, "No thumbnail available", nil)
			default:
				WriteError(w, r, http.StatusInternalServerError, "Could not find thumbnail", err)
			}
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=86400")
		serveObject(w, r, streamer, objID, "Thumbnail file not found")
	}
}
