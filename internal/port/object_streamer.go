package port

import (
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ObjectStreamer writes a stored object to an HTTP response, honouring the Range header.
type ObjectStreamer interface {
	Serve(w http.ResponseWriter, r *http.Request, objectID uuid.UUID) error
}
