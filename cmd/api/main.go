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
	"github.com/SharmaTechie/video-stream-platform/internal/compressor"
	"github.com/SharmaTechie/video-stream-platform/internal/config"
	"github.com/SharmaTechie/video-stream-platform/internal/db"
	"github.com/SharmaTechie/video-stream-platform/internal/handler/api"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/metrics"
	cMiddleware "github.com/SharmaTechie/video-stream-platform/internal/middleware"
	"github.com/SharmaTechie/video-stream-platform/internal/optimiser"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/renderer"
	"github.com/SharmaTechie/video-stream-platform/internal/repository/mariadb"
	"github.com/SharmaTechie/video-stream-platform/internal/storage"
	"github.com/SharmaTechie/video-stream-platform/internal/streaming"
	"github.com/SharmaTechie/video-stream-platform/internal/task"
	videoSvc "github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	logger.Init("video-api")

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database := initDb(ctx, cfg)

	m := metrics.New()
	r := initRouter(ctx, m)

	backend := initChunkBackend(ctx, cfg)

	var ca port.ObjectCache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.ObjectCacheTTL)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and transcoding are disabled")
	}

	store := chunkstore.New(backend, mariadb.NewObjectRepository(database.DB), ca, cfg.ChunkSizeBytes)
	videoRepo := mariadb.NewVideoRepository(database.DB)
	streamer := streaming.NewStreamer(store, m)

	fo := optimiser.NewFileOptimiser(compressor.NewWebP(), cfg.ThumbnailMaxWidth, cfg.ThumbnailMaxHeight)
	uploadSvc := videoSvc.NewVideoUploader(store, videoRepo, fo, dispatcher, uuid.NewUUID)
	r.Post("/videos", api.UploadVideoHandler(uploadSvc, cfg.MaxUploadBytes))

	getVideoSvc := videoSvc.NewVideoGetter(videoRepo)
	rendererSvc := renderer.NewHTTPRenderer()
	r.With(cMiddleware.WithVideoID()).
		Get("/videos/{id}", api.GetVideoHandler(rendererSvc, getVideoSvc))

	deleteVideoSvc := videoSvc.NewVideoDeleter(videoRepo, store)
	r.With(cMiddleware.WithVideoID()).
		Delete("/videos/{id}", api.DeleteVideoHandler(deleteVideoSvc))

	streamHandler := api.StreamVideoHandler(videoSvc.NewStreamLocator(videoRepo), streamer)
	r.With(cMiddleware.WithVideoID()).Get("/stream/{id}", streamHandler)
	r.With(cMiddleware.WithVideoID()).Head("/stream/{id}", streamHandler)

	r.With(cMiddleware.WithVideoID()).
		Get("/thumbnail/{id}", api.GetThumbnailHandler(videoSvc.NewThumbnailLocator(videoRepo), streamer))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, m *metrics.Metrics) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.RequestMiddleware(m))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
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

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
