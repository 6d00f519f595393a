package port

import (
	"context"
	"io"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type UUIDGen func() uuid.UUID

// ObjectStore is the part of the chunk store the use cases write through.
type ObjectStore interface {
	Ingest(ctx context.Context, r io.Reader, name, contentType string, metadata model.Metadata) (*model.StoredObject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Transcoder derives the resolution variants of a stored source object.
type Transcoder interface {
	Run(ctx context.Context, sourceID uuid.UUID) (model.ResolutionSet, error)
}

// VideoUploader stores an uploaded video with its optional thumbnail and schedules transcoding.
type VideoUploader interface {
	UploadVideo(ctx context.Context, in UploadVideoInput) (uuid.UUID, error)
}
type FileInput struct {
	Name        string
	ContentType string
	Reader      io.Reader
}
type UploadVideoInput struct {
	Title       string
	Description string
	Visibility  string
	OwnerID     uuid.UUID
	Video       FileInput
	Thumbnail   *FileInput
}

// VideoGetter returns a video record with the resolutions a client may request.
type VideoGetter interface {
	GetVideo(ctx context.Context, id uuid.UUID) (*GetVideoOutput, error)
}
type GetVideoOutput struct {
	*model.Video
	Available []string `json:"available_resolutions"`
}

// StreamLocator resolves the stored object to stream for a video and a quality label.
type StreamLocator interface {
	LocateStream(ctx context.Context, videoID uuid.UUID, label string) (uuid.UUID, error)
}

// ThumbnailLocator resolves the stored object holding the thumbnail of a video.
type ThumbnailLocator interface {
	LocateThumbnail(ctx context.Context, videoID uuid.UUID) (uuid.UUID, error)
}

// VideoDeleter removes a video, every object it references and its record.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}

// VideoTranscoder runs the transcode pipeline for a video and records the outcome.
type VideoTranscoder interface {
	TranscodeVideo(ctx context.Context, id uuid.UUID) error
}

// BacklogTranscoder triggers transcoding for videos that never left the pending state.
type BacklogTranscoder interface {
	TranscodeBacklog(ctx context.Context) error
}
