package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type httpRenderer struct{}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer() port.HTTPRenderer {
	return &httpRenderer{}
}

// RenderGetVideo runs the getter and returns the JSON encoded output and a quoted ETag string.
// Video records change while transcoding runs, so nothing is cached here; the ETag lets
// clients revalidate cheaply.
func (r *httpRenderer) RenderGetVideo(ctx context.Context, getter port.VideoGetter, id uuid.UUID) ([]byte, string, error) {
	out, err := getter.GetVideo(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	return raw, ETag(raw), nil
}

// ETag returns the quoted CRC-32 of raw.
func ETag(raw []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
}
