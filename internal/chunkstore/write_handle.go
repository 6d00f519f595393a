package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type handleState int

const (
	handleOpen handleState = iota
	handleCommitted
	handleAborted
)

// WriteHandle accumulates the bytes of one object. Full chunks are persisted as
// soon as they fill up, the trailing partial chunk on Commit.
// A WriteHandle is not safe for concurrent use.
type WriteHandle struct {
	ctx     context.Context
	store   *Store
	obj     model.StoredObject
	buf     []byte
	next    int64
	flushed int64
	state   handleState
	err     error
}

var _ io.Writer = (*WriteHandle)(nil)

func (h *WriteHandle) ID() uuid.UUID { return h.obj.ID }

// Written is the number of bytes accepted so far.
func (h *WriteHandle) Written() int64 { return h.flushed + int64(len(h.buf)) }

// Write appends p using the context the handle was opened with.
func (h *WriteHandle) Write(p []byte) (int, error) {
	return h.Append(h.ctx, p)
}

// Append adds p to the object. After a failed append the handle only accepts Abort.
func (h *WriteHandle) Append(ctx context.Context, p []byte) (int, error) {
	if h.state != handleOpen {
		return 0, ErrHandleClosed
	}
	if h.err != nil {
		return 0, h.err
	}

	cs := h.obj.ChunkSize
	written := 0
	for len(p) > 0 {
		// whole chunks straight from the caller's buffer
		if len(h.buf) == 0 && int64(len(p)) >= cs {
			if err := h.flush(ctx, p[:cs]); err != nil {
				return written, err
			}
			p = p[cs:]
			written += int(cs)
			continue
		}

		n := int(cs) - len(h.buf)
		if n > len(p) {
			n = len(p)
		}
		h.buf = append(h.buf, p[:n]...)
		p = p[n:]
		written += n

		if int64(len(h.buf)) == cs {
			if err := h.flush(ctx, h.buf); err != nil {
				return written, err
			}
			h.buf = h.buf[:0]
		}
	}
	return written, nil
}

// Commit persists the trailing chunk and the object record, making the object readable.
// On failure every chunk written so far is removed.
func (h *WriteHandle) Commit(ctx context.Context) (*model.StoredObject, error) {
	if h.state != handleOpen {
		return nil, ErrHandleClosed
	}
	if h.err != nil {
		h.abort(ctx)
		return nil, h.err
	}

	if len(h.buf) > 0 {
		if err := h.flush(ctx, h.buf); err != nil {
			h.abort(ctx)
			return nil, err
		}
		h.buf = h.buf[:0]
	}

	obj := h.obj
	obj.ChunkCount = h.next
	obj.Length = h.flushed
	obj.CreatedAt = h.store.now().UTC().Truncate(time.Microsecond)

	if err := h.store.repo.Create(ctx, &obj); err != nil {
		h.abort(ctx)
		return nil, fmt.Errorf("%w: create record of object #%s: %v", ErrIO, obj.ID, err)
	}

	h.state = handleCommitted
	logger.Debugf(ctx, "committed object #%s: %d bytes in %d chunks", obj.ID, obj.Length, obj.ChunkCount)
	return &obj, nil
}

// Abort discards the chunks written so far. It is a no-op once the handle is committed or aborted.
func (h *WriteHandle) Abort(ctx context.Context) error {
	if h.state != handleOpen {
		return nil
	}
	return h.abort(ctx)
}

func (h *WriteHandle) abort(ctx context.Context) error {
	h.state = handleAborted
	h.buf = nil
	if h.next == 0 {
		return nil
	}
	if err := h.store.backend.RemoveChunks(ctx, h.obj.ID); err != nil {
		logger.Errorf(ctx, "failed to remove chunks of aborted object #%s: %v", h.obj.ID, err)
		return fmt.Errorf("remove chunks of aborted object #%s: %w", h.obj.ID, err)
	}
	return nil
}

func (h *WriteHandle) flush(ctx context.Context, data []byte) error {
	ref := model.ChunkRef{
		ObjectID: h.obj.ID,
		Index:    h.next,
		Offset:   h.flushed,
		Size:     int64(len(data)),
	}
	if err := h.store.backend.PutChunk(ctx, ref, data); err != nil {
		if !errors.Is(err, ErrIO) {
			err = fmt.Errorf("%w: %v", ErrIO, err)
		}
		h.err = fmt.Errorf("write chunk %d of object #%s: %w", ref.Index, h.obj.ID, err)
		return h.err
	}
	h.next++
	h.flushed += ref.Size
	return nil
}
