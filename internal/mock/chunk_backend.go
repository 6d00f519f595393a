package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ChunkBackend keeps chunks in memory for tests.
type ChunkBackend struct {
	mu     sync.Mutex
	chunks map[uuid.UUID]map[int64][]byte

	// errors
	PingErr   error
	PutErr    error
	ReadErr   error
	RemoveErr error
	// MissingErr is returned when a chunk is not stored, the way a real backend
	// reports an unknown key; when nil the chunk reads as empty.
	MissingErr error
	// FailPutAfter makes PutChunk fail with PutErr once that many chunks were stored; 0 fails immediately.
	FailPutAfter int

	// call counters
	PutCalls    int
	ReadCalls   int
	RemoveCalls int
	RemovedIDs  []uuid.UUID
}

func NewChunkBackend() *ChunkBackend {
	return &ChunkBackend{chunks: map[uuid.UUID]map[int64][]byte{}, FailPutAfter: -1}
}

func (m *ChunkBackend) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *ChunkBackend) PutChunk(ctx context.Context, ref model.ChunkRef, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil && (m.FailPutAfter < 0 || m.storedLocked() >= m.FailPutAfter) {
		return m.PutErr
	}
	if m.chunks[ref.ObjectID] == nil {
		m.chunks[ref.ObjectID] = map[int64][]byte{}
	}
	m.chunks[ref.ObjectID][ref.Index] = append([]byte(nil), data...)
	return nil
}

func (m *ChunkBackend) ReadChunk(ctx context.Context, ref model.ChunkRef, offset, length int64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.chunks[ref.ObjectID][ref.Index]
	if !ok {
		if m.MissingErr != nil {
			return nil, m.MissingErr
		}
		return []byte{}, nil
	}
	if offset >= int64(len(data)) {
		return []byte{}, nil
	}
	end := min(offset+length, int64(len(data)))
	return append([]byte(nil), data[offset:end]...), nil
}

func (m *ChunkBackend) RemoveChunks(ctx context.Context, objectID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	m.RemovedIDs = append(m.RemovedIDs, objectID)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.chunks, objectID)
	return nil
}

// Chunks returns the stored chunk indexes of an object in ascending order.
func (m *ChunkBackend) Chunks(objectID uuid.UUID) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := make([]int64, 0, len(m.chunks[objectID]))
	for i := range m.chunks[objectID] {
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool { return idx[a] < idx[b] })
	return idx
}

// ChunkData returns a copy of one stored chunk.
func (m *ChunkBackend) ChunkData(objectID uuid.UUID, index int64) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.chunks[objectID][index]
	return append([]byte(nil), data...), ok
}

// Truncate drops stored chunks from index onwards to simulate a corrupted object.
func (m *ChunkBackend) Truncate(objectID uuid.UUID, index int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.chunks[objectID] {
		if i >= index {
			delete(m.chunks[objectID], i)
		}
	}
}

// ObjectCount is the number of objects holding at least one chunk.
func (m *ChunkBackend) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.chunks {
		if len(c) > 0 {
			n++
		}
	}
	return n
}

func (m *ChunkBackend) storedLocked() int {
	n := 0
	for _, c := range m.chunks {
		n += len(c)
	}
	return n
}
