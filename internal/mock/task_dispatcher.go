package mock

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	TranscodeCalled bool
	TranscodeIDs    []uuid.UUID
	TranscodeErr    error
}

func (m *MockDispatcher) EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID) error {
	m.TranscodeCalled = true
	m.TranscodeIDs = append(m.TranscodeIDs, id)
	return m.TranscodeErr
}
