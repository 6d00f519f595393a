package api

import (
	"errors"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/api_context"
	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/streaming"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/SharmaTechie/video-stream-platform/internal/validation"
)

// StreamVideoHandler streams the requested resolution of a video, falling back to the
// original file when the label is unknown or the variant does not exist.
func StreamVideoHandler(svc port.StreamLocator, streamer port.ObjectStreamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
			return
		}

		label := r.URL.Query().Get("resolution")
		if label != "" {
			if err := validation.ValidateVar(label, "resolution"); err != nil {
				logger.Debugf(r.Context(), "unknown resolution %q for video #%s, serving original", label, id)
			}
		}

		objID, err := svc.LocateStream(r.Context(), id, label)
		if err != nil {
			if errors.Is(err, video.ErrVideoNotFound) {
				WriteError(w, r, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "Could not find video", err)
			return
		}

		serveObject(w, r, streamer, objID, "Video file not found")
	}
}

// serveObject maps streaming failures that happen before the response started to HTTP errors.
func serveObject(w http.ResponseWriter, r *http.Request, streamer port.ObjectStreamer, id uuid.UUID, notFoundMsg string) {
	err := streamer.Serve(w, r, id)
	switch {
	case err == nil:
	case errors.Is(err, streaming.ErrStreamInterrupted):
		logger.Warnf(r.Context(), "❌  %v", err)
	case errors.Is(err, chunkstore.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, notFoundMsg, nil)
	case errors.Is(err, streaming.ErrUnsatisfiableRange):
		WriteError(w, r, http.StatusRequestedRangeNotSatisfiable, "Requested range not satisfiable", nil)
	case errors.Is(err, streaming.ErrMalformedRange), errors.Is(err, chunkstore.ErrInvalidRange):
		WriteError(w, r, http.StatusBadRequest, "Invalid Range header", nil)
	default:
		WriteError(w, r, http.StatusInternalServerError, "Could not stream file", err)
	}
}
