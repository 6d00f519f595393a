package video

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/resolution"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type videoGetterSrv struct {
	repo port.VideoRepository
}

// compile-time checks: *videoGetterSrv serves every read-only lookup
var (
	_ port.VideoGetter      = (*videoGetterSrv)(nil)
	_ port.StreamLocator    = (*videoGetterSrv)(nil)
	_ port.ThumbnailLocator = (*videoGetterSrv)(nil)
)

// NewVideoGetter constructs a VideoGetter implementation.
func NewVideoGetter(repo port.VideoRepository) port.VideoGetter {
	return &videoGetterSrv{repo}
}

// NewStreamLocator constructs a StreamLocator implementation.
func NewStreamLocator(repo port.VideoRepository) port.StreamLocator {
	return &videoGetterSrv{repo}
}

// NewThumbnailLocator constructs a ThumbnailLocator implementation.
func NewThumbnailLocator(repo port.VideoRepository) port.ThumbnailLocator {
	return &videoGetterSrv{repo}
}

func (s *videoGetterSrv) GetVideo(ctx context.Context, id uuid.UUID) (*port.GetVideoOutput, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &port.GetVideoOutput{Video: v, Available: resolution.Available(v.Resolutions)}, nil
}

// LocateStream returns the object to stream for label, falling back to the original file.
func (s *videoGetterSrv) LocateStream(ctx context.Context, videoID uuid.UUID, label string) (uuid.UUID, error) {
	v, err := s.load(ctx, videoID)
	if err != nil {
		return uuid.Nil, err
	}
	return resolution.Resolve(label, v.FileID, v.Resolutions), nil
}

func (s *videoGetterSrv) LocateThumbnail(ctx context.Context, videoID uuid.UUID) (uuid.UUID, error) {
	v, err := s.load(ctx, videoID)
	if err != nil {
		return uuid.Nil, err
	}
	if v.ThumbnailID == nil || v.ThumbnailID.IsNil() {
		return uuid.Nil, ErrNoThumbnail
	}
	return *v.ThumbnailID, nil
}

func (s *videoGetterSrv) load(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return v, nil
}
