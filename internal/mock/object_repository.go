package mock

import (
	"context"
	"database/sql"
	"sync"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ObjectRepo keeps stored object records in memory for tests.
type ObjectRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.StoredObject

	CreateErr error
	GetErr    error
	DeleteErr error

	CreateCalls int
	GetCalls    int
	DeleteCalls int
}

func NewObjectRepo() *ObjectRepo {
	return &ObjectRepo{records: map[uuid.UUID]model.StoredObject{}}
}

func (m *ObjectRepo) Create(ctx context.Context, obj *model.StoredObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.records[obj.ID] = *obj
	return nil
}

func (m *ObjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	obj, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &obj, nil
}

func (m *ObjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.records, id)
	return nil
}

// Has reports whether a record exists for id.
func (m *ObjectRepo) Has(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[id]
	return ok
}

func (m *ObjectRepo) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
