package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/mock"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

func TestRenderGetVideo(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewUUID()

	t.Run("success", func(t *testing.T) {
		resp := &port.GetVideoOutput{
			Video:     &model.Video{ID: id, Title: "clip", TranscodeStatus: model.TranscodeStatusReady},
			Available: []string{model.ResolutionOriginal, "360p"},
		}
		getter := &mock.MockVideoGetter{Out: resp}

		out, etag, err := NewHTTPRenderer().RenderGetVideo(ctx, getter, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected, _ := json.Marshal(resp)
		if string(out) != string(expected) {
			t.Errorf("raw mismatch: got %s want %s", out, expected)
		}
		if etag != ETag(expected) {
			t.Errorf("etag mismatch: got %s want %s", etag, ETag(expected))
		}
		if !getter.Called {
			t.Error("expected getter to be called")
		}
	})

	t.Run("getter error", func(t *testing.T) {
		boom := errors.New("boom")
		getter := &mock.MockVideoGetter{Err: boom}

		out, etag, err := NewHTTPRenderer().RenderGetVideo(ctx, getter, id)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v; want %v", err, boom)
		}
		if out != nil || etag != "" {
			t.Errorf("expected empty output, got %q %q", out, etag)
		}
	})
}

func TestETag_ChangesWithContent(t *testing.T) {
	a := ETag([]byte(`{"transcode_status":"pending"}`))
	b := ETag([]byte(`{"transcode_status":"ready"}`))
	if a == b {
		t.Errorf("expected different etags, both %s", a)
	}
	if len(a) != 10 || a[0] != '"' || a[9] != '"' {
		t.Errorf("etag %s is not a quoted 8-digit hex value", a)
	}
}
