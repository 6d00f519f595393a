package chunkstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// DefaultChunkSize is 255 KiB.
const DefaultChunkSize int64 = 255 * 1024

// Store persists immutable binary objects as fixed-size chunks plus one
// metadata record per object.
type Store struct {
	backend   port.ChunkBackend
	repo      port.ObjectRepository
	cache     port.ObjectCache
	chunkSize int64
	now       func() time.Time
}

// New builds a Store. A chunkSize <= 0 falls back to DefaultChunkSize.
func New(backend port.ChunkBackend, repo port.ObjectRepository, cache port.ObjectCache, chunkSize int64) *Store {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Store{
		backend:   backend,
		repo:      repo,
		cache:     cache,
		chunkSize: chunkSize,
		now:       time.Now,
	}
}

func (s *Store) ChunkSize() int64 { return s.chunkSize }

// BeginWrite allocates a new object id and returns a handle accepting its bytes.
// Nothing becomes visible to readers until the handle is committed.
func (s *Store) BeginWrite(ctx context.Context, name, contentType string, metadata model.Metadata) (*WriteHandle, error) {
	if err := s.backend.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}

	md := make(model.Metadata, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}

	id := uuid.NewUUID()
	logger.Debugf(ctx, "opened write handle for object #%s (%q)", id, name)

	return &WriteHandle{
		ctx:   ctx,
		store: s,
		obj: model.StoredObject{
			ID:          id,
			Name:        name,
			ContentType: contentType,
			ChunkSize:   s.chunkSize,
			Metadata:    md,
		},
		buf: make([]byte, 0, s.chunkSize),
	}, nil
}

// Ingest streams r into a new object. Nothing is left behind when it fails.
func (s *Store) Ingest(ctx context.Context, r io.Reader, name, contentType string, metadata model.Metadata) (*model.StoredObject, error) {
	h, err := s.BeginWrite(ctx, name, contentType, metadata)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(h, r); err != nil {
		if abortErr := h.Abort(ctx); abortErr != nil {
			logger.Errorf(ctx, "failed to clean up object #%s after a failed ingest: %v", h.ID(), abortErr)
		}
		return nil, fmt.Errorf("ingest %q: %w", name, err)
	}

	obj, err := h.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingest %q: %w", name, err)
	}
	logger.Infof(ctx, "ingested object #%s (%q, %d bytes)", obj.ID, name, obj.Length)
	return obj, nil
}

// Stat returns the record of a committed object.
func (s *Store) Stat(ctx context.Context, id uuid.UUID) (*model.StoredObject, error) {
	if obj, err := s.cache.GetObject(ctx, id); err != nil {
		logger.Warnf(ctx, "object cache lookup for #%s failed: %v", id, err)
	} else if obj != nil {
		return obj, nil
	}

	obj, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load object #%s: %v", ErrIO, id, err)
	}

	s.cache.SetObject(ctx, obj)
	return obj, nil
}

// OpenRead resolves the object and returns the sequence of chunk slices covering rng.
// A nil range reads the whole object.
func (s *Store) OpenRead(ctx context.Context, id uuid.UUID, rng *ByteRange) (*Sequence, error) {
	obj, err := s.Stat(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Open(ctx, obj, rng)
}

// Open is OpenRead for a record the caller already resolved through Stat.
func (s *Store) Open(ctx context.Context, obj *model.StoredObject, rng *ByteRange) (*Sequence, error) {
	start, end := int64(0), obj.Length-1
	if rng != nil {
		if rng.Start < 0 || rng.End < rng.Start || rng.End >= obj.Length {
			return nil, fmt.Errorf("%w: %d-%d for object #%s of length %d", ErrInvalidRange, rng.Start, rng.End, obj.ID, obj.Length)
		}
		start, end = rng.Start, rng.End
	}

	return &Sequence{
		ctx:     ctx,
		backend: s.backend,
		obj:     obj,
		pos:     start,
		end:     end,
		evict:   func() { s.evict(ctx, obj.ID) },
	}, nil
}

func (s *Store) evict(ctx context.Context, id uuid.UUID) {
	if err := s.cache.DeleteObject(ctx, id); err != nil {
		logger.Warnf(ctx, "failed to evict object #%s from cache: %v", id, err)
	}
}

// Delete removes the chunks of an object, then its record. Deleting a missing object succeeds.
// The cache entry is evicted both before and after.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.evict(ctx, id)
	if err := s.backend.RemoveChunks(ctx, id); err != nil {
		return fmt.Errorf("remove chunks of object #%s: %w", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: delete record of object #%s: %v", ErrIO, id, err)
	}
	s.evict(ctx, id)

	logger.Debugf(ctx, "deleted object #%s", id)
	return nil
}

// Layout lists the chunks an object of the given length is split into.
func Layout(id uuid.UUID, length, chunkSize int64) []model.ChunkRef {
	if length <= 0 {
		return nil
	}
	count := (length + chunkSize - 1) / chunkSize
	refs := make([]model.ChunkRef, 0, count)
	for i := int64(0); i < count; i++ {
		size := chunkSize
		if rem := length - i*chunkSize; rem < size {
			size = rem
		}
		refs = append(refs, model.ChunkRef{ObjectID: id, Index: i, Offset: i * chunkSize, Size: size})
	}
	return refs
}
