package port

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ObjectRepository defines persistence operations for stored object records.
type ObjectRepository interface {
	Create(ctx context.Context, obj *model.StoredObject) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.StoredObject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
