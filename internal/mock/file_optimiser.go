package mock

import (
	"bytes"
	"io"
)

// MockFileOptimiser implements image optimisation for tests.
type MockFileOptimiser struct {
	CompressOut []byte
	MimeOut     string
	CompressErr error

	CompressCalled bool
	MimeIn         string
}

func (m *MockFileOptimiser) Compress(mimeType string, r io.Reader) (io.ReadCloser, string, error) {
	m.CompressCalled = true
	m.MimeIn = mimeType
	if m.CompressErr != nil {
		return nil, "", m.CompressErr
	}
	return io.NopCloser(bytes.NewReader(m.CompressOut)), m.MimeOut, nil
}
