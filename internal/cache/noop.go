package cache

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.ObjectCache
var _ port.ObjectCache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetObject(ctx context.Context, id uuid.UUID) (*model.StoredObject, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetObject(ctx context.Context, obj *model.StoredObject) {}

func (n *NoopCache) DeleteObject(ctx context.Context, id uuid.UUID) error { return nil }
