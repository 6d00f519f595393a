package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/transcode"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type transcodeVideoSrv struct {
	repo       port.VideoRepository
	store      port.ObjectStore
	transcoder port.Transcoder
}

// compile-time check: *transcodeVideoSrv must satisfy port.VideoTranscoder
var _ port.VideoTranscoder = (*transcodeVideoSrv)(nil)

// NewVideoTranscoder constructs a VideoTranscoder implementation.
func NewVideoTranscoder(repo port.VideoRepository, store port.ObjectStore, transcoder port.Transcoder) port.VideoTranscoder {
	return &transcodeVideoSrv{repo, store, transcoder}
}

// TranscodeVideo derives the variants of the video's original file and stores the resulting
// resolution set. A video already marked ready is left untouched.
// A partial failure with at least one variant is recorded as ready with a failure message.
// Variants of an earlier run that the new set no longer references are deleted once the
// outcome is recorded; if the record cannot be updated the new variants are deleted instead.
func (s *transcodeVideoSrv) TranscodeVideo(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}
	if v.TranscodeStatus == model.TranscodeStatusReady {
		logger.Infof(ctx, "video #%s is already transcoded, skipping", id)
		return nil
	}

	v.TranscodeStatus = model.TranscodeStatusProcessing
	v.FailureMessage = nil
	if err := s.repo.Update(ctx, v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("mark video #%s as processing: %w", id, err)
	}
	previous := v.Resolutions

	set, runErr := s.transcoder.Run(ctx, v.FileID)

	var partial *transcode.PartialError
	switch {
	case runErr == nil:
		v.TranscodeStatus = model.TranscodeStatusReady
	case errors.As(runErr, &partial) && len(set) > 0:
		logger.Warnf(ctx, "video #%s transcoded without %v: %v", id, partial.Labels(), runErr)
		v.TranscodeStatus = model.TranscodeStatusReady
		msg := runErr.Error()
		v.FailureMessage = &msg
	default:
		v.TranscodeStatus = model.TranscodeStatusFailed
		msg := runErr.Error()
		v.FailureMessage = &msg
		set = model.ResolutionSet{}
	}
	v.Resolutions = set

	// the outcome is recorded even when the run was cancelled
	cleanupCtx := context.WithoutCancel(ctx)
	if err := s.repo.Update(cleanupCtx, v); err != nil {
		s.deleteVariants(cleanupCtx, id, set, nil)
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warnf(ctx, "video #%s was deleted while transcoding, discarded its new variants", id)
			return ErrVideoNotFound
		}
		return fmt.Errorf("record transcode outcome of video #%s: %w", id, err)
	}
	s.deleteVariants(cleanupCtx, id, previous, set)

	if v.TranscodeStatus == model.TranscodeStatusFailed {
		return fmt.Errorf("transcode video #%s: %w", id, runErr)
	}
	logger.Infof(ctx, "✅  Transcoded video #%s into %d variants", id, len(set))
	return nil
}

// deleteVariants removes the objects of set that keep does not reference. Failures are only logged.
func (s *transcodeVideoSrv) deleteVariants(ctx context.Context, videoID uuid.UUID, set, keep model.ResolutionSet) {
	for label, objID := range set {
		if references(keep, objID) {
			continue
		}
		if err := s.store.Delete(ctx, objID); err != nil {
			logger.Errorf(ctx, "failed to delete %s variant #%s of video #%s: %v", label, objID, videoID, err)
		}
	}
}

func references(set model.ResolutionSet, id uuid.UUID) bool {
	for _, objID := range set {
		if objID == id {
			return true
		}
	}
	return false
}
