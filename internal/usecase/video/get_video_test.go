package video

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/mock"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

func TestLocateStream(t *testing.T) {
	tests := []struct {
		label string
		want  uuid.UUID
	}{
		{"", testFileID},
		{"original", testFileID},
		{"720p", test720ID},
		{"360p", test360ID},
		{"1080p", testFileID},
		{"4k", testFileID},
	}

	repo := &mock.MockVideoRepo{VideoRecord: fullVideo()}
	svc := NewStreamLocator(repo)
	for _, tc := range tests {
		t.Run("label="+tc.label, func(t *testing.T) {
			got, err := svc.LocateStream(context.Background(), testVideoID, tc.label)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("LocateStream(%q) = %s; want %s", tc.label, got, tc.want)
			}
		})
	}
}

func TestLocateStream_Errors(t *testing.T) {
	boom := errors.New("db down")
	tests := []struct {
		name    string
		getErr  error
		wantErr error
	}{
		{"not found", sql.ErrNoRows, ErrVideoNotFound},
		{"repository error", boom, boom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewStreamLocator(&mock.MockVideoRepo{GetErr: tc.getErr})
			_, err := svc.LocateStream(context.Background(), testVideoID, "720p")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v; want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLocateThumbnail(t *testing.T) {
	svc := NewThumbnailLocator(&mock.MockVideoRepo{VideoRecord: fullVideo()})
	got, err := svc.LocateThumbnail(context.Background(), testVideoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != testThumbID {
		t.Errorf("LocateThumbnail = %s; want %s", got, testThumbID)
	}

	svc = NewThumbnailLocator(&mock.MockVideoRepo{VideoRecord: pendingVideo()})
	if _, err := svc.LocateThumbnail(context.Background(), testVideoID); !errors.Is(err, ErrNoThumbnail) {
		t.Fatalf("err = %v; want ErrNoThumbnail", err)
	}
}

func TestGetVideo(t *testing.T) {
	svc := NewVideoGetter(&mock.MockVideoRepo{VideoRecord: fullVideo()})
	out, err := svc.GetVideo(context.Background(), testVideoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != testVideoID {
		t.Errorf("ID = %s; want %s", out.ID, testVideoID)
	}
	want := []string{model.ResolutionOriginal, "360p", "720p"}
	if !reflect.DeepEqual(out.Available, want) {
		t.Errorf("Available = %v; want %v", out.Available, want)
	}

	svc = NewVideoGetter(&mock.MockVideoRepo{GetErr: sql.ErrNoRows})
	if _, err := svc.GetVideo(context.Background(), testVideoID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v; want ErrVideoNotFound", err)
	}
}
