package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/cache"
	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
	"github.com/SharmaTechie/video-stream-platform/internal/config"
	"github.com/SharmaTechie/video-stream-platform/internal/db"
	"github.com/SharmaTechie/video-stream-platform/internal/encoder"
	workerHandler "github.com/SharmaTechie/video-stream-platform/internal/handler/worker"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/metrics"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/repository/mariadb"
	"github.com/SharmaTechie/video-stream-platform/internal/storage"
	"github.com/SharmaTechie/video-stream-platform/internal/task"
	"github.com/SharmaTechie/video-stream-platform/internal/transcode"
	videoSvc "github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	logger.Init("video-worker")

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	database := initDb(cfg)

	backend := initChunkBackend(ctx, cfg)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.ObjectCacheTTL)
	store := chunkstore.New(backend, mariadb.NewObjectRepository(database.DB), ca, cfg.ChunkSizeBytes)
	videoRepo := mariadb.NewVideoRepository(database.DB)

	m := metrics.New()
	pipeline := transcode.New(store, encoder.NewFFmpeg(cfg.FFmpegPath), transcode.Options{
		WorkRoot:     cfg.TranscodeWorkDir,
		Targets:      cfg.TranscodeTargets,
		AudioBitrate: cfg.TranscodeAudioBitrate,
		Policy:       transcode.Policy(cfg.TranscodeFailurePolicy),
		Metrics:      m,
	})
	transcodeSvc := videoSvc.NewVideoTranscoder(videoRepo, store, pipeline)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeTranscodeVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseTranscodeVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.TranscodeVideoHandler(ctx, p, transcodeSvc)
	})

	metricsSrv := startMetrics(ctx, cfg.MetricsPort, m)

	runWorker(ctx, mux, cfg, database, metricsSrv)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initChunkBackend(ctx context.Context, cfg *config.Settings) port.ChunkBackend {
	strg, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	backend, err := strg.WithBucket(ctx, cfg.ChunksBucket)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.ChunksBucket, err)
		os.Exit(1)
	}
	return backend
}

// startMetrics serves /metrics on its own port; a zero port disables it.
func startMetrics(ctx context.Context, port int, m *metrics.Metrics) *http.Server {
	if port == 0 {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: ":" + strconv.Itoa(port), Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logger.Infof(ctx, "📈 Worker metrics listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Metrics listen error: %v", err)
		}
	}()
	return srv
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database, metricsSrv *http.Server) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues:      map[string]int{task.QueueTranscode: 1},
		// an in-flight transcode gets this long to finish on shutdown
		ShutdownTimeout: 30 * time.Second,
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Infof(ctx, "🚀 Worker started (concurrency %d)", cfg.WorkerConcurrency)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks, finish or cancel in-flight ones
	srv.Shutdown()

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf(ctx, "Metrics server shutdown error: %v", err)
		}
	}

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
