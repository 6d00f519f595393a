package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/compressor"
	"github.com/SharmaTechie/video-stream-platform/internal/handler/api"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/optimiser"
	"github.com/SharmaTechie/video-stream-platform/internal/repository/mariadb"
	"github.com/SharmaTechie/video-stream-platform/internal/task"
	videoSvc "github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/SharmaTechie/video-stream-platform/test/testutil"
	"github.com/go-chi/chi/v5"
)

var testTargets = []model.TranscodeTarget{
	{Label: "360p", Height: 360, VideoBitrate: "800k"},
	{Label: "720p", Height: 720, VideoBitrate: "2500k"},
}

// waitForStatus polls the video record until its status leaves pending/processing.
func waitForStatus(t *testing.T, repo *mariadb.VideoRepository, id uuid.UUID) *model.Video {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		v, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if v.TranscodeStatus == model.TranscodeStatusReady || v.TranscodeStatus == model.TranscodeStatusFailed {
			return v
		}
		time.Sleep(200 * time.Millisecond)
	}
	t.Fatalf("video #%s was not transcoded in time", id)
	return nil
}

func TestTranscodeTaskIntegration(t *testing.T) {
	tests := []struct {
		name        string
		failHeights string
		wantStatus  model.TranscodeStatus
		wantLabels  []string
		wantMessage bool
	}{
		{
			name:       "every target encoded",
			wantStatus: model.TranscodeStatusReady,
			wantLabels: []string{"360p", "720p"},
		},
		{
			name:        "one target fails",
			failHeights: "720",
			wantStatus:  model.TranscodeStatusReady,
			wantLabels:  []string{"360p"},
			wantMessage: true,
		},
		{
			name:        "every target fails",
			failHeights: "360 720",
			wantStatus:  model.TranscodeStatusFailed,
			wantMessage: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("FAIL_HEIGHTS", tc.failHeights)

			env := newTestEnv(t, nil)
			stop := testutil.StartWorker(env.DB, env.Store, GlobalRedisAddr, testutil.WriteFakeFFmpeg(t), testTargets)
			defer stop()

			dispatcher := task.NewDispatcher(GlobalRedisAddr, "")
			defer dispatcher.Close()

			repo := mariadb.NewVideoRepository(env.DB.DB)
			fo := optimiser.NewFileOptimiser(compressor.NewWebP(), 320, 180)
			r := chi.NewRouter()
			r.Post("/videos", api.UploadVideoHandler(videoSvc.NewVideoUploader(env.Store, repo, fo, dispatcher, uuid.NewUUID), 0))
			srv := httptest.NewServer(r)
			defer srv.Close()

			source := testutil.GenerateVideoBytes(2*testChunkSize + 42)
			body, ct := uploadBody(t, map[string]string{"title": "Transcode me", "owner_id": testOwnerID}, source, nil)
			resp, err := http.Post(srv.URL+"/videos", ct, body)
			if err != nil {
				t.Fatalf("upload: %v", err)
			}
			var created api.UploadVideoResponse
			if resp.StatusCode != http.StatusCreated {
				b, _ := io.ReadAll(resp.Body)
				t.Fatalf("upload status = %d; want 201 (%s)", resp.StatusCode, b)
			}
			if err := decodeJSON(resp, &created); err != nil {
				t.Fatalf("decode: %v", err)
			}

			v := waitForStatus(t, repo, created.ID)
			if v.TranscodeStatus != tc.wantStatus {
				t.Fatalf("status = %q; want %q", v.TranscodeStatus, tc.wantStatus)
			}
			if (v.FailureMessage != nil) != tc.wantMessage {
				t.Errorf("FailureMessage = %v; want set=%v", v.FailureMessage, tc.wantMessage)
			}
			if len(v.Resolutions) != len(tc.wantLabels) {
				t.Fatalf("resolutions = %v; want labels %v", v.Resolutions, tc.wantLabels)
			}
			for _, label := range tc.wantLabels {
				variantID, ok := v.Resolutions[label]
				if !ok {
					t.Fatalf("missing variant %q in %v", label, v.Resolutions)
				}
				obj, err := env.Store.Stat(context.Background(), variantID)
				if err != nil {
					t.Fatalf("Stat(%s): %v", label, err)
				}
				if obj.ContentType != "video/mp4" {
					t.Errorf("%s ContentType = %q; want video/mp4", label, obj.ContentType)
				}

				// the fake encoder copies its input, so every variant mirrors the source
				seq, err := env.Store.OpenRead(context.Background(), variantID, nil)
				if err != nil {
					t.Fatalf("OpenRead(%s): %v", label, err)
				}
				var buf bytes.Buffer
				if _, err := seq.WriteTo(&buf); err != nil {
					t.Fatalf("WriteTo(%s): %v", label, err)
				}
				if !bytes.Equal(buf.Bytes(), source) {
					t.Errorf("%s: variant content differs from source", label)
				}
			}
		})
	}
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %q: %w", b, err)
	}
	return nil
}
