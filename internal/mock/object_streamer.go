package mock

import (
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// MockObjectStreamer implements port.ObjectStreamer for tests.
type MockObjectStreamer struct {
	// Body is written with a 200 status when Err is nil.
	Body []byte
	Err  error

	Called   bool
	ObjectID uuid.UUID
}

func (m *MockObjectStreamer) Serve(w http.ResponseWriter, r *http.Request, objectID uuid.UUID) error {
	m.Called = true
	m.ObjectID = objectID
	if m.Err != nil {
		return m.Err
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(m.Body)
	return err
}
