package mock

import (
	"context"
	"io"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// IngestCall captures one object written through MockObjectStore.
type IngestCall struct {
	Name        string
	ContentType string
	Metadata    model.Metadata
	Data        []byte
	ID          uuid.UUID
}

// MockObjectStore implements the use-case view of the chunk store for tests.
type MockObjectStore struct {
	// IngestErrs maps a zero-based Ingest call index to the error it returns.
	IngestErrs map[int]error
	DeleteErrs map[uuid.UUID]error

	Ingested   []IngestCall
	DeletedIDs []uuid.UUID
}

func (m *MockObjectStore) Ingest(ctx context.Context, r io.Reader, name, contentType string, metadata model.Metadata) (*model.StoredObject, error) {
	if err := m.IngestErrs[len(m.Ingested)]; err != nil {
		m.Ingested = append(m.Ingested, IngestCall{Name: name, ContentType: contentType, Metadata: metadata})
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	id := uuid.NewUUID()
	m.Ingested = append(m.Ingested, IngestCall{Name: name, ContentType: contentType, Metadata: metadata, Data: data, ID: id})
	return &model.StoredObject{
		ID:          id,
		Name:        name,
		Length:      int64(len(data)),
		ContentType: contentType,
		Metadata:    metadata,
	}, nil
}

func (m *MockObjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	return m.DeleteErrs[id]
}

// MockTranscoder implements port.Transcoder for tests.
type MockTranscoder struct {
	Out model.ResolutionSet
	Err error

	Called   bool
	SourceID uuid.UUID
}

func (m *MockTranscoder) Run(ctx context.Context, sourceID uuid.UUID) (model.ResolutionSet, error) {
	m.Called = true
	m.SourceID = sourceID
	return m.Out, m.Err
}
