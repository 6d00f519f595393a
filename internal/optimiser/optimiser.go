package optimiser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"golang.org/x/image/draw"
)

const (
	webpQuality       = 80
	ThumbnailMimeType = "image/webp"
)

var ErrUnsupportedMimeType = errors.New("unsupported thumbnail mime-type")

type Optimiser struct {
	webpEnc   WebPEncoder
	maxWidth  int
	maxHeight int
}

// compile-time check: *Optimiser must satisfy port.FileOptimiser
var _ port.FileOptimiser = (*Optimiser)(nil)

// NewFileOptimiser returns an optimiser that fits images into maxWidth x maxHeight.
// A zero bound leaves that dimension unconstrained.
func NewFileOptimiser(webpEnc WebPEncoder, maxWidth, maxHeight int) *Optimiser {
	logger.Info(context.Background(), "initialising optimiser...")
	return &Optimiser{
		webpEnc:   webpEnc,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
}

// Compress converts a JPEG, PNG or WebP image into lossy WebP, scaling it down
// (never up) to fit the configured bounds.
func (o *Optimiser) Compress(mimeType string, r io.Reader) (io.ReadCloser, string, error) {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedMimeType, mimeType)
	}

	img, _, err := o.webpEnc.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("optimiser: failed to decode image: %w", err)
	}
	img = o.fit(img)

	buf := &bytes.Buffer{}
	if err := o.webpEnc.Encode(img, webpQuality, buf); err != nil {
		return nil, "", fmt.Errorf("optimiser: failed to encode WebP: %w", err)
	}
	return io.NopCloser(buf), ThumbnailMimeType, nil
}

func (o *Optimiser) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := 1.0
	if o.maxWidth > 0 && w > o.maxWidth {
		scale = float64(o.maxWidth) / float64(w)
	}
	if o.maxHeight > 0 && h > o.maxHeight {
		scale = min(scale, float64(o.maxHeight)/float64(h))
	}
	if scale >= 1 {
		return img
	}

	dw, dh := max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
