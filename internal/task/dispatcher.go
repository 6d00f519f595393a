package task

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID) error {
	t, err := NewTranscodeVideoTask(id.String())
	if err != nil {
		return err
	}
	info, err := d.client.EnqueueContext(ctx, t)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "enqueued transcoding of video #%s as task %s on queue %q", id, info.ID, info.Queue)
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
