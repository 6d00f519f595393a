package main

import (
	"context"
	"os"
	"strings"

	"github.com/SharmaTechie/video-stream-platform/internal/config"
	"github.com/SharmaTechie/video-stream-platform/internal/db"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/migration"
)

func main() {
	ctx := context.Background()

	logger.Init("migrate")

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database, err := initDb(cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}

func initDb(cfg *config.Settings) (*db.Database, error) {
	return db.New(withMultiStatements(cfg.MariaDBDSN), cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
}

func withMultiStatements(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}
