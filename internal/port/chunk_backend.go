package port

import (
	"context"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ChunkBackend persists the chunk payloads of stored objects.
// Implementations must not retain the data slice passed to PutChunk.
type ChunkBackend interface {
	Ping(ctx context.Context) error
	PutChunk(ctx context.Context, ref model.ChunkRef, data []byte) error
	// ReadChunk returns length bytes of the chunk starting at offset (relative to the chunk).
	ReadChunk(ctx context.Context, ref model.ChunkRef, offset, length int64) ([]byte, error)
	// RemoveChunks deletes every chunk whose parent is objectID. Removing nothing is not an error.
	RemoveChunks(ctx context.Context, objectID uuid.UUID) error
}
