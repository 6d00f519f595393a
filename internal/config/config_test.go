package config

import (
	"os"
	"testing"
	"time"
)

func requiredEnv() map[string]string {
	return map[string]string{
		"MARIADB_DSN":               "user:pass@tcp(localhost:3306)/db",
		"MARIADB_MAX_OPEN_CONN":     "10",
		"MARIADB_MAX_IDLE_CONNS":    "5",
		"MARIADB_CONN_MAX_LIFETIME": "30",
		"SERVER_PORT":               "8080",
		"MINIO_ENDPOINT":            "localhost:9000",
		"MINIO_ACCESS_KEY":          "minio",
		"MINIO_SECRET_KEY":          "minio123",
	}
}

// chdirTemp switches to a temp directory to avoid loading a real .env
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func TestLoad_Success(t *testing.T) {
	chdirTemp(t)

	reqs := requiredEnv()
	for k, v := range reqs {
		t.Setenv(k, v)
	}
	t.Setenv("CHUNK_SIZE_BYTES", "1024")
	t.Setenv("TRANSCODE_FAILURE_POLICY", "all-or-nothing")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MariaDBDSN != reqs["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", reqs["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.MaxOpenConns != 10 {
		t.Errorf("MaxOpenConns: expected %d, got %d", 10, cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 5 {
		t.Errorf("MaxIdleConns: expected %d, got %d", 5, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 30*time.Second {
		t.Errorf("ConnMaxLifetime: expected %v, got %v", 30*time.Second, cfg.ConnMaxLifetime)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.ChunkSizeBytes != 1024 {
		t.Errorf("ChunkSizeBytes: expected %d, got %d", 1024, cfg.ChunkSizeBytes)
	}
	if cfg.ChunksBucket != "chunks" {
		t.Errorf("ChunksBucket: expected %q, got %q", "chunks", cfg.ChunksBucket)
	}
	if cfg.TranscodeFailurePolicy != FailurePolicyAllOrNothing {
		t.Errorf("TranscodeFailurePolicy: expected %q, got %q", FailurePolicyAllOrNothing, cfg.TranscodeFailurePolicy)
	}
	if len(cfg.TranscodeTargets) != 3 || cfg.TranscodeTargets[0].Label != "360p" {
		t.Errorf("TranscodeTargets: got %+v", cfg.TranscodeTargets)
	}
	if cfg.TranscodeAudioBitrate != "128k" {
		t.Errorf("TranscodeAudioBitrate: expected %q, got %q", "128k", cfg.TranscodeAudioBitrate)
	}
	if cfg.ThumbnailMaxWidth != 1280 || cfg.ThumbnailMaxHeight != 720 {
		t.Errorf("Thumbnail bounds: expected 1280x720, got %dx%d", cfg.ThumbnailMaxWidth, cfg.ThumbnailMaxHeight)
	}
	if cfg.MaxUploadBytes != 2<<30 {
		t.Errorf("MaxUploadBytes: expected %d, got %d", int64(2<<30), cfg.MaxUploadBytes)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"CHUNK_SIZE_BYTES", "0"},
		{"TRANSCODE_TARGETS", "480p:480:1000k"},
		{"TRANSCODE_FAILURE_POLICY", "best-effort"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range requiredEnv() {
				t.Setenv(k, v)
			}
			t.Setenv(tc.key, tc.value)

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q, got cfg %#v", tc.key, tc.value, cfg)
			}
		})
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	for key := range requiredEnv() {
		t.Run(key, func(t *testing.T) {
			chdirTemp(t)

			// Set all except the missing key
			for k, v := range requiredEnv() {
				if k == key {
					t.Setenv(k, "")
					if err := os.Unsetenv(k); err != nil {
						t.Fatalf("could not unset key %s in env: %v", k, err)
					}
				} else {
					t.Setenv(k, v)
				}
			}

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error for missing %s, got nil", key)
			}
			if want := key + " is required"; err.Error() != want {
				t.Errorf("error = %q; want %q", err.Error(), want)
			}
			if cfg != nil {
				t.Errorf("expected cfg nil on error, got %#v", cfg)
			}
		})
	}
}
