package task

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// NoopDispatcher drops tasks; used when no queue is configured.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID) error {
	logger.Warnf(ctx, "no task queue configured, transcoding of video #%s was not scheduled", id)
	return nil
}
