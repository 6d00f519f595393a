package video

import (
	"context"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
)

type backlogTranscoderSrv struct {
	repo  port.VideoRepository
	tasks port.TaskDispatcher
	now   func() time.Time
}

// compile-time check: *backlogTranscoderSrv must satisfy port.BacklogTranscoder
var _ port.BacklogTranscoder = (*backlogTranscoderSrv)(nil)

// NewBacklogTranscoder constructs a BacklogTranscoder implementation.
func NewBacklogTranscoder(repo port.VideoRepository, tasks port.TaskDispatcher) port.BacklogTranscoder {
	return &backlogTranscoderSrv{repo, tasks, time.Now}
}

// TranscodeBacklog looks for videos still pending after one hour and enqueues transcode tasks for them.
func (s *backlogTranscoderSrv) TranscodeBacklog(ctx context.Context) error {
	cutoff := s.now().Add(-1 * time.Hour)
	ids, err := s.repo.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no videos found to transcode")
	}

	for _, id := range ids {
		logger.Infof(ctx, "starting transcoding for video #%s", id)
		if err := s.tasks.EnqueueTranscodeVideo(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue transcode task for video #%s: %v", id, err)
		}
	}
	return nil
}
