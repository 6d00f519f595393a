package mock

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// Cache implements object caching for tests.
type Cache struct {
	// stored values
	Objects map[uuid.UUID]*model.StoredObject

	// errors
	GetErr error
	DelErr error

	// call flags
	GetCalled bool
	SetCalled bool
	DelCalled bool
}

func (c *Cache) GetObject(ctx context.Context, id uuid.UUID) (*model.StoredObject, error) {
	c.GetCalled = true
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	return c.Objects[id], nil
}

func (c *Cache) SetObject(ctx context.Context, obj *model.StoredObject) {
	c.SetCalled = true
	if c.Objects == nil {
		c.Objects = map[uuid.UUID]*model.StoredObject{}
	}
	c.Objects[obj.ID] = obj
}

func (c *Cache) DeleteObject(ctx context.Context, id uuid.UUID) error {
	c.DelCalled = true
	delete(c.Objects, id)
	return c.DelErr
}
