package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/task"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/SharmaTechie/video-stream-platform/internal/validation"
	"github.com/hibiken/asynq"
)

// TranscodeVideoHandler handles a transcode-video task.
// Payloads that can never succeed are not retried.
func TranscodeVideoHandler(ctx context.Context, p task.TranscodeVideoPayload, svc port.VideoTranscoder) error {
	if err := validation.ValidateStruct(p); err != nil {
		logger.Errorf(ctx, "❌  Invalid transcode payload %+v: %v", p, err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	id, err := uuid.Parse(p.VideoID)
	if err != nil {
		logger.Errorf(ctx, "❌  Invalid video ID %q: %v", p.VideoID, err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if err := svc.TranscodeVideo(ctx, id); err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			logger.Warnf(ctx, "❌  Video #%s no longer exists, dropping task", id)
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		logger.Errorf(ctx, "❌  Failed to transcode video #%s: %v", id, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully transcoded video #%s", id)
	return nil
}
