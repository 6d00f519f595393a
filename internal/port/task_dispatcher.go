package port

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// TaskDispatcher enqueues asynchronous tasks related to video processing.
type TaskDispatcher interface {
	EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID) error
}
