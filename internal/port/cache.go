package port

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ObjectCache caches stored object records, which never change once committed.
type ObjectCache interface {
	// GetObject returns nil, nil on a cache miss.
	GetObject(ctx context.Context, id uuid.UUID) (*model.StoredObject, error)
	SetObject(ctx context.Context, obj *model.StoredObject)
	DeleteObject(ctx context.Context, id uuid.UUID) error
}
