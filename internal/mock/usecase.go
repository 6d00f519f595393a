package mock

import (
	"context"
	"io"

	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// MockVideoGetter implements port.VideoGetter for tests.
type MockVideoGetter struct {
	Out    *port.GetVideoOutput
	Err    error
	Called bool
}

func (m *MockVideoGetter) GetVideo(ctx context.Context, id uuid.UUID) (*port.GetVideoOutput, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockVideoUploader implements port.VideoUploader for tests.
type MockVideoUploader struct {
	Out uuid.UUID
	Err error

	Called bool
	In     port.UploadVideoInput
	// VideoData and ThumbnailData hold what the uploader read from the input readers.
	VideoData     []byte
	ThumbnailData []byte
}

func (m *MockVideoUploader) UploadVideo(ctx context.Context, in port.UploadVideoInput) (uuid.UUID, error) {
	m.Called = true
	m.In = in
	if in.Video.Reader != nil {
		m.VideoData, _ = io.ReadAll(in.Video.Reader)
	}
	if in.Thumbnail != nil && in.Thumbnail.Reader != nil {
		m.ThumbnailData, _ = io.ReadAll(in.Thumbnail.Reader)
	}
	return m.Out, m.Err
}

// MockStreamLocator implements port.StreamLocator for tests.
type MockStreamLocator struct {
	Out uuid.UUID
	Err error

	Called  bool
	VideoID uuid.UUID
	Label   string
}

func (m *MockStreamLocator) LocateStream(ctx context.Context, videoID uuid.UUID, label string) (uuid.UUID, error) {
	m.Called = true
	m.VideoID = videoID
	m.Label = label
	return m.Out, m.Err
}

// MockThumbnailLocator implements port.ThumbnailLocator for tests.
type MockThumbnailLocator struct {
	Out    uuid.UUID
	Err    error
	Called bool
}

func (m *MockThumbnailLocator) LocateThumbnail(ctx context.Context, videoID uuid.UUID) (uuid.UUID, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockVideoDeleter implements port.VideoDeleter for tests.
type MockVideoDeleter struct {
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *MockVideoDeleter) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// MockVideoTranscoder implements port.VideoTranscoder for tests.
type MockVideoTranscoder struct {
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *MockVideoTranscoder) TranscodeVideo(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
