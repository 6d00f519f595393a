package port

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// HTTPRenderer mediates between HTTP handlers and the video getter use case.
// It returns both the JSON representation of the result and an ETag derived from it.
type HTTPRenderer interface {
	RenderGetVideo(ctx context.Context, getter VideoGetter, id uuid.UUID) ([]byte, string, error)
}
