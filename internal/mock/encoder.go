package mock

import (
	"context"
	"os"
	"sync"

	"github.com/SharmaTechie/video-stream-platform/internal/port"
)

// Encoder fakes the external encoder by writing fixed bytes to the output path.
type Encoder struct {
	mu sync.Mutex

	// Output is written to OutputPath on success; defaults to a few bytes.
	Output []byte
	// Fail maps a target height to the result returned for it.
	Fail map[int]port.EncodeResult
	// RunErr is returned when the process cannot be started.
	RunErr error
	// Hook runs before every request is handled.
	Hook func(req port.EncodeRequest)

	Requests []port.EncodeRequest
}

func (m *Encoder) Encode(ctx context.Context, req port.EncodeRequest) (port.EncodeResult, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.Hook != nil {
		m.Hook(req)
	}
	if m.RunErr != nil {
		return port.EncodeResult{}, m.RunErr
	}
	if res, ok := m.Fail[req.Height]; ok {
		return res, nil
	}
	out := m.Output
	if out == nil {
		out = []byte("encoded")
	}
	if err := os.WriteFile(req.OutputPath, out, 0o600); err != nil {
		return port.EncodeResult{}, err
	}
	return port.EncodeResult{}, nil
}
