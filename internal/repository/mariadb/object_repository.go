package mariadb

import (
	"context"
	"database/sql"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type ObjectRepository struct {
	db *sql.DB
}

// compile-time check: *ObjectRepository must satisfy port.ObjectRepository
var _ port.ObjectRepository = (*ObjectRepository)(nil)

func NewObjectRepository(db *sql.DB) *ObjectRepository {
	return &ObjectRepository{db: db}
}

func (r *ObjectRepository) Create(ctx context.Context, obj *model.StoredObject) error {
	logger.Debugf(ctx, "creating database record for object #%s (%d bytes in %d chunks)...", obj.ID, obj.Length, obj.ChunkCount)

	const query = `
      INSERT INTO stored_objects
        (id, name, length, content_type, chunk_size, chunk_count, metadata, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		obj.ID, obj.Name, obj.Length, obj.ContentType,
		obj.ChunkSize, obj.ChunkCount, obj.Metadata, obj.CreatedAt,
	)
	return err
}

func (r *ObjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StoredObject, error) {
	logger.Debugf(ctx, "fetching object #%s from the database...", id)

	const query = `
      SELECT id, name, length, content_type, chunk_size, chunk_count, metadata, created_at
      FROM stored_objects
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var obj model.StoredObject
	if err := row.Scan(
		&obj.ID, &obj.Name, &obj.Length, &obj.ContentType,
		&obj.ChunkSize, &obj.ChunkCount, &obj.Metadata, &obj.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &obj, nil
}

func (r *ObjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting database record for object #%s...", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM stored_objects WHERE id = ?`, id)
	return err
}
