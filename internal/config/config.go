package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	FailurePolicyKeepPartial  = "keep-partial"
	FailurePolicyAllOrNothing = "all-or-nothing"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ChunksBucket   string
	ChunkSizeBytes int64

	RedisAddr      string
	RedisPassword  string
	ObjectCacheTTL time.Duration

	FFmpegPath             string
	TranscodeWorkDir       string
	TranscodeTargets       []model.TranscodeTarget
	TranscodeAudioBitrate  string
	TranscodeFailurePolicy string
	WorkerConcurrency      int
	MetricsPort            int

	MaxUploadBytes     int64
	ThumbnailMaxWidth  int
	ThumbnailMaxHeight int
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("CHUNKS_BUCKET", "chunks")
	viper.SetDefault("CHUNK_SIZE_BYTES", 255*1024)
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("OBJECT_CACHE_TTL", 3600)
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("TRANSCODE_WORK_DIR", os.TempDir())
	viper.SetDefault("TRANSCODE_TARGETS", "360p:360:800k,720p:720:2500k,1080p:1080:5000k")
	viper.SetDefault("TRANSCODE_AUDIO_BITRATE", "128k")
	viper.SetDefault("TRANSCODE_FAILURE_POLICY", FailurePolicyKeepPartial)
	viper.SetDefault("WORKER_CONCURRENCY", 2)
	viper.SetDefault("METRICS_PORT", 0)
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(2)<<30)
	viper.SetDefault("THUMBNAIL_MAX_WIDTH", 1280)
	viper.SetDefault("THUMBNAIL_MAX_HEIGHT", 720)

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	chunkSize := viper.GetInt64("CHUNK_SIZE_BYTES")
	if chunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE_BYTES must be positive, got %d", chunkSize)
	}

	targets, err := model.ParseTranscodeTargets(viper.GetString("TRANSCODE_TARGETS"))
	if err != nil {
		return nil, fmt.Errorf("TRANSCODE_TARGETS: %w", err)
	}

	policy := strings.ToLower(viper.GetString("TRANSCODE_FAILURE_POLICY"))
	if policy != FailurePolicyKeepPartial && policy != FailurePolicyAllOrNothing {
		return nil, fmt.Errorf("TRANSCODE_FAILURE_POLICY must be %q or %q, got %q", FailurePolicyKeepPartial, FailurePolicyAllOrNothing, policy)
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		ChunksBucket:   viper.GetString("CHUNKS_BUCKET"),
		ChunkSizeBytes: chunkSize,

		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		ObjectCacheTTL: time.Duration(viper.GetInt("OBJECT_CACHE_TTL")) * time.Second,

		FFmpegPath:             viper.GetString("FFMPEG_PATH"),
		TranscodeWorkDir:       viper.GetString("TRANSCODE_WORK_DIR"),
		TranscodeTargets:       targets,
		TranscodeAudioBitrate:  viper.GetString("TRANSCODE_AUDIO_BITRATE"),
		TranscodeFailurePolicy: policy,
		WorkerConcurrency:      viper.GetInt("WORKER_CONCURRENCY"),
		MetricsPort:            viper.GetInt("METRICS_PORT"),

		MaxUploadBytes:     viper.GetInt64("MAX_UPLOAD_BYTES"),
		ThumbnailMaxWidth:  viper.GetInt("THUMBNAIL_MAX_WIDTH"),
		ThumbnailMaxHeight: viper.GetInt("THUMBNAIL_MAX_HEIGHT"),
	}, nil
}
