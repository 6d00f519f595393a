package video

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type uploadVideoSrv struct {
	store     port.ObjectStore
	repo      port.VideoRepository
	optimiser port.FileOptimiser
	tasks     port.TaskDispatcher
	idGen     port.UUIDGen
}

// compile-time check: *uploadVideoSrv must satisfy port.VideoUploader
var _ port.VideoUploader = (*uploadVideoSrv)(nil)

// NewVideoUploader constructs a VideoUploader implementation.
func NewVideoUploader(store port.ObjectStore, repo port.VideoRepository, optimiser port.FileOptimiser, tasks port.TaskDispatcher, idGen port.UUIDGen) port.VideoUploader {
	if idGen == nil {
		idGen = uuid.NewUUID
	}
	return &uploadVideoSrv{store, repo, optimiser, tasks, idGen}
}

// UploadVideo ingests the video file and the optional thumbnail, records the video as pending
// and enqueues its transcoding. Objects already ingested are removed when a later step fails.
// A failed enqueue is not fatal: the backlog command picks pending videos up again.
func (s *uploadVideoSrv) UploadVideo(ctx context.Context, in port.UploadVideoInput) (uuid.UUID, error) {
	videoID := s.idGen()

	var ingested []uuid.UUID
	cleanup := func() {
		cctx := context.WithoutCancel(ctx)
		for _, id := range ingested {
			if err := s.store.Delete(cctx, id); err != nil {
				logger.Warnf(ctx, "failed to remove object #%s after failed upload of video #%s: %v", id, videoID, err)
			}
		}
	}

	contentType := in.Video.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	file, err := s.store.Ingest(ctx, in.Video.Reader, in.Video.Name, contentType, model.Metadata{
		model.MetaContentType: contentType,
		model.MetaVideoID:     videoID.String(),
		model.MetaUserID:      in.OwnerID.String(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("store video file: %w", err)
	}
	ingested = append(ingested, file.ID)

	var thumbnailID *uuid.UUID
	if in.Thumbnail != nil {
		id, err := s.storeThumbnail(ctx, videoID, in.OwnerID, *in.Thumbnail)
		if err != nil {
			cleanup()
			return uuid.Nil, err
		}
		ingested = append(ingested, id)
		thumbnailID = &id
	}

	v := &model.Video{
		ID:              videoID,
		Title:           in.Title,
		Description:     in.Description,
		Visibility:      in.Visibility,
		OwnerID:         in.OwnerID,
		FileID:          file.ID,
		ThumbnailID:     thumbnailID,
		Resolutions:     model.ResolutionSet{},
		TranscodeStatus: model.TranscodeStatusPending,
	}
	if v.Visibility == "" {
		v.Visibility = model.VisibilityPublic
	}
	if err := s.repo.Create(ctx, v); err != nil {
		cleanup()
		return uuid.Nil, fmt.Errorf("create video record: %w", err)
	}

	if err := s.tasks.EnqueueTranscodeVideo(ctx, videoID); err != nil {
		logger.Warnf(ctx, "failed to enqueue transcode task for video #%s: %v", videoID, err)
	}

	logger.Infof(ctx, "✅  Stored video #%s (%d bytes)", videoID, file.Length)
	return videoID, nil
}

func (s *uploadVideoSrv) storeThumbnail(ctx context.Context, videoID, ownerID uuid.UUID, in port.FileInput) (uuid.UUID, error) {
	rc, mimeType, err := s.optimiser.Compress(in.ContentType, in.Reader)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidThumbnail, err)
	}
	defer rc.Close()

	name := strings.TrimSuffix(in.Name, path.Ext(in.Name))
	if name == "" {
		name = "thumbnail"
	}
	obj, err := s.store.Ingest(ctx, rc, name+".webp", mimeType, model.Metadata{
		model.MetaContentType: mimeType,
		model.MetaVideoID:     videoID.String(),
		model.MetaUserID:      ownerID.String(),
		model.MetaIsThumbnail: "true",
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("store thumbnail: %w", err)
	}
	return obj.ID, nil
}
