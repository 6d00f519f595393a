package main

import (
	"context"
	"os"

	"github.com/SharmaTechie/video-stream-platform/internal/config"
	"github.com/SharmaTechie/video-stream-platform/internal/db"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/repository/mariadb"
	"github.com/SharmaTechie/video-stream-platform/internal/task"
	videoSvc "github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	logger.Init("transcode-backlog")

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database := initDb(ctx, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(ctx, cfg)
	repo := mariadb.NewVideoRepository(database.DB)

	backlog := videoSvc.NewBacklogTranscoder(repo, dispatcher)
	if err := backlog.TranscodeBacklog(ctx); err != nil {
		logger.Errorf(ctx, "❌  Backlog transcoding failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Backlog transcoding completed")
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initDispatcher(ctx context.Context, cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "❌  Redis not configured: this command requires a running Redis instance")
		os.Exit(1)
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
