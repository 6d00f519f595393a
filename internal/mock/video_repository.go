package mock

import (
	"context"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// MockVideoRepo implements repository operations for tests.
type MockVideoRepo struct {
	VideoRecord *model.Video

	GetErr    error
	CreateErr error
	UpdateErr error
	// UpdateErrs maps a zero-based Update call index to the error it returns.
	UpdateErrs map[int]error
	DeleteErr  error
	ListErr    error
	ListOut    []uuid.UUID
	ListBefore time.Time

	GetCalled bool
	Created   *model.Video
	Updated   *model.Video
	// UpdatedStatuses records the status carried by every Update call, in order.
	UpdatedStatuses []model.TranscodeStatus
	DeleteCalled    bool
	DeletedID       uuid.UUID
	ListCalled      bool
}

func (m *MockVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *MockVideoRepo) Update(ctx context.Context, v *model.Video) error {
	call := len(m.UpdatedStatuses)
	m.Updated = v
	m.UpdatedStatuses = append(m.UpdatedStatuses, v.TranscodeStatus)
	if err := m.UpdateErrs[call]; err != nil {
		return err
	}
	return m.UpdateErr
}

func (m *MockVideoRepo) Create(ctx context.Context, v *model.Video) error {
	m.Created = v
	return m.CreateErr
}

func (m *MockVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockVideoRepo) ListPendingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	m.ListCalled = true
	m.ListBefore = before
	return m.ListOut, m.ListErr
}
