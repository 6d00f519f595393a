package streaming

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
	"github.com/SharmaTechie/video-stream-platform/internal/metrics"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// ErrStreamInterrupted reports a failure after the response headers were sent.
var ErrStreamInterrupted = errors.New("stream interrupted")

const defaultContentType = "application/octet-stream"

// ObjectReader is the read side of the chunk store.
type ObjectReader interface {
	Stat(ctx context.Context, id uuid.UUID) (*model.StoredObject, error)
	Open(ctx context.Context, obj *model.StoredObject, rng *chunkstore.ByteRange) (*chunkstore.Sequence, error)
}

type Streamer struct {
	store   ObjectReader
	metrics *metrics.Metrics
}

func NewStreamer(store ObjectReader, m *metrics.Metrics) *Streamer {
	return &Streamer{store: store, metrics: m}
}

// Serve writes the object, or the part of it selected by the request's Range header, to w.
//
// Errors returned before anything was written leave w untouched, except for
// ErrUnsatisfiableRange which sets "Content-Range: bytes */<length>" first.
// Once the headers are out, failures are wrapped in ErrStreamInterrupted.
func (s *Streamer) Serve(w http.ResponseWriter, r *http.Request, objectID uuid.UUID) error {
	ctx := r.Context()

	obj, err := s.store.Stat(ctx, objectID)
	if err != nil {
		return err
	}

	rng, err := ParseRange(r.Header.Get("Range"), obj.Length)
	if err != nil {
		if errors.Is(err, ErrUnsatisfiableRange) {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", obj.Length))
		}
		return err
	}

	seq, err := s.store.Open(ctx, obj, rng)
	if err != nil {
		return err
	}

	// the first slice is read before the headers go out
	var first []byte
	if r.Method != http.MethodHead {
		first, err = seq.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	h := w.Header()
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Type", contentType)

	status, size := http.StatusOK, obj.Length
	if rng != nil {
		status, size = http.StatusPartialContent, rng.Len()
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, obj.Length))
	}
	h.Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return nil
	}

	done := s.metrics.StreamStarted()
	defer done()

	written, err := w.Write(first)
	n := int64(written)
	if err == nil {
		var rest int64
		rest, err = seq.WriteTo(w)
		n += rest
	}
	s.metrics.AddBytesStreamed(n)
	if err != nil {
		return fmt.Errorf("%w after %d of %d bytes of object #%s: %v", ErrStreamInterrupted, n, size, objectID, err)
	}
	return nil
}
