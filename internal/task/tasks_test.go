package task

import (
	"context"
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/hibiken/asynq"
)

func TestTranscodeVideoTask(t *testing.T) {
	id := uuid.NewUUID().String()
	tk, err := NewTranscodeVideoTask(id)
	if err != nil {
		t.Fatalf("NewTranscodeVideoTask: %v", err)
	}
	if tk.Type() != TypeTranscodeVideo {
		t.Errorf("type = %q; want %q", tk.Type(), TypeTranscodeVideo)
	}

	p, err := ParseTranscodeVideoPayload(tk)
	if err != nil {
		t.Fatalf("ParseTranscodeVideoPayload: %v", err)
	}
	if p.VideoID != id {
		t.Errorf("VideoID = %q; want %q", p.VideoID, id)
	}
}

func TestParseTranscodeVideoPayload_Invalid(t *testing.T) {
	if _, err := ParseTranscodeVideoPayload(asynq.NewTask(TypeTranscodeVideo, []byte("{"))); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNoopDispatcher(t *testing.T) {
	if err := NewNoopDispatcher().EnqueueTranscodeVideo(context.Background(), uuid.NewUUID()); err != nil {
		t.Errorf("EnqueueTranscodeVideo: %v", err)
	}
}
