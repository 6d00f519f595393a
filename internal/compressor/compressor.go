// Package compressor wraps the image codecs used to normalise thumbnails.
package compressor

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp"
)

// WebP decodes JPEG, PNG and WebP input and encodes lossy WebP.
type WebP struct{}

func NewWebP() *WebP {
	return &WebP{}
}

func (WebP) Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("compressor: failed to decode image: %w", err)
	}
	return img, format, nil
}

func (WebP) Encode(img image.Image, quality int, w io.Writer) error {
	if err := webp.Encode(w, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return fmt.Errorf("compressor: failed to encode WebP: %w", err)
	}
	return nil
}
