package testutil

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/db"
	"github.com/SharmaTechie/video-stream-platform/internal/encoder"
	workerHandler "github.com/SharmaTechie/video-stream-platform/internal/handler/worker"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/repository/mariadb"
	"github.com/SharmaTechie/video-stream-platform/internal/task"
	"github.com/SharmaTechie/video-stream-platform/internal/transcode"
	videoSvc "github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker processing transcode tasks with the given
// ffmpeg binary. It returns a function to gracefully shut down the worker.
func StartWorker(dbConn *db.Database, store transcode.Store, redisAddr, ffmpegPath string, targets []model.TranscodeTarget) func() {
	repo := mariadb.NewVideoRepository(dbConn.DB)
	pipeline := transcode.New(store, encoder.NewFFmpeg(ffmpegPath), transcode.Options{
		Targets: targets,
		Policy:  transcode.KeepPartial,
	})
	transcodeSvc := videoSvc.NewVideoTranscoder(repo, store, pipeline)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeTranscodeVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseTranscodeVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.TranscodeVideoHandler(ctx, p, transcodeSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{task.QueueTranscode: 1},
	})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
