package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
)

// ByteRange is an inclusive byte interval of an object.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) Len() int64 { return r.End - r.Start + 1 }

// Sequence yields the bytes of a read, one chunk slice at a time.
// Each chunk is fetched only when requested.
type Sequence struct {
	ctx     context.Context
	backend port.ChunkBackend
	obj     *model.StoredObject
	pos     int64
	end     int64
	// evict drops the object's cached record once its chunks turn out to be gone
	evict func()
}

var _ io.WriterTo = (*Sequence)(nil)

// Object returns the record of the object being read.
func (s *Sequence) Object() *model.StoredObject { return s.obj }

// Remaining is the number of bytes not yet yielded.
func (s *Sequence) Remaining() int64 {
	if s.pos > s.end {
		return 0
	}
	return s.end - s.pos + 1
}

// Next returns the next slice, or io.EOF once the range is exhausted.
func (s *Sequence) Next() ([]byte, error) {
	if s.pos > s.end {
		return nil, io.EOF
	}
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	cs := s.obj.ChunkSize
	idx := s.pos / cs
	chunkStart := idx * cs
	chunkEnd := min(s.end, chunkStart+cs-1, s.obj.Length-1)
	ref := model.ChunkRef{
		ObjectID: s.obj.ID,
		Index:    idx,
		Offset:   chunkStart,
		Size:     min(cs, s.obj.Length-chunkStart),
	}

	want := chunkEnd - s.pos + 1
	data, err := s.backend.ReadChunk(s.ctx, ref, s.pos-chunkStart, want)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if s.evict != nil {
				s.evict()
			}
			return nil, fmt.Errorf("%w: chunk %d of object #%s is missing", ErrNotFound, idx, s.obj.ID)
		}
		return nil, fmt.Errorf("read chunk %d of object #%s: %w", idx, s.obj.ID, err)
	}
	if int64(len(data)) != want {
		return nil, fmt.Errorf("%w: chunk %d of object #%s returned %d bytes, want %d", ErrIO, idx, s.obj.ID, len(data), want)
	}

	s.pos = chunkEnd + 1
	return data, nil
}

// WriteTo drains the sequence into w, stopping at the first error.
func (s *Sequence) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for {
		data, err := s.Next()
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		n, err := w.Write(data)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
}
