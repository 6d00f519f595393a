package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type deleteVideoSrv struct {
	repo  port.VideoRepository
	store port.ObjectStore
}

// compile-time check: *deleteVideoSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*deleteVideoSrv)(nil)

// NewVideoDeleter constructs a VideoDeleter implementation.
func NewVideoDeleter(repo port.VideoRepository, store port.ObjectStore) port.VideoDeleter {
	return &deleteVideoSrv{repo, store}
}

// DeleteVideo removes variants and thumbnail, then the original file, then the record.
// Failing to remove a variant or the thumbnail is logged; failing on the original aborts
// so the record keeps pointing at what is left.
func (s *deleteVideoSrv) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}

	for _, objID := range v.ObjectIDs() {
		if objID == v.FileID {
			continue
		}
		if err := s.store.Delete(ctx, objID); err != nil {
			logger.Warnf(ctx, "failed to remove object #%s of video #%s: %v", objID, id, err)
		}
	}

	if err := s.store.Delete(ctx, v.FileID); err != nil {
		return fmt.Errorf("remove original file of video #%s: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Infof(ctx, "✅  Deleted video #%s", id)
	return nil
}
