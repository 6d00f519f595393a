package mariadb

import (
	"context"
	"database/sql"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	logger.Infof(ctx, "creating database record for video #%s, at status %q...", video.ID, video.TranscodeStatus)

	const query = `
      INSERT INTO videos
        (id, title, description, visibility, owner_id, file_id, thumbnail_id, resolutions, transcode_status, failure_message)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.Title, video.Description, video.Visibility,
		video.OwnerID, video.FileID, video.ThumbnailID,
		video.Resolutions, video.TranscodeStatus, video.FailureMessage,
	)
	return err
}

func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	logger.Infof(ctx, "updating database record for video #%s, with status %q...", video.ID, video.TranscodeStatus)

	const query = `
      UPDATE videos
      SET
        title            = ?,
        description      = ?,
        visibility       = ?,
        thumbnail_id     = ?,
        resolutions      = ?,
        transcode_status = ?,
        failure_message  = ?,
        updated_at       = CURRENT_TIMESTAMP(6)
      WHERE id = ?
    `
	res, err := r.db.ExecContext(ctx, query,
		video.Title,
		video.Description,
		video.Visibility,
		video.ThumbnailID,
		video.Resolutions,
		video.TranscodeStatus,
		video.FailureMessage,
		video.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	// updated_at always changes, so zero affected rows means the record is gone
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	logger.Debugf(ctx, "fetching video #%s from the database...", id)

	const query = `
      SELECT id, title, description, visibility, owner_id, file_id, thumbnail_id, resolutions, transcode_status, failure_message, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var v model.Video
	if err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Visibility,
		&v.OwnerID, &v.FileID, &v.ThumbnailID,
		&v.Resolutions, &v.TranscodeStatus, &v.FailureMessage,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Infof(ctx, "deleting database record for video #%s...", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	return err
}

// ListPendingBefore returns the ids of videos still waiting for transcoding that were created before the cut-off.
func (r *VideoRepository) ListPendingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	logger.Infof(ctx, "listing videos pending transcoding created before %s...", before.Format(time.RFC3339))

	const query = `
      SELECT id
      FROM videos
      WHERE transcode_status = ? AND created_at < ?
      ORDER BY created_at
    `
	rows, err := r.db.QueryContext(ctx, query, model.TranscodeStatusPending, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
