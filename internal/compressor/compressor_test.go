package compressor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestWebP_RoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			src.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	pngBuf := &bytes.Buffer{}
	if err := png.Encode(pngBuf, src); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	c := NewWebP()
	img, format, err := c.Decode(pngBuf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q; want png", format)
	}

	out := &bytes.Buffer{}
	if err := c.Encode(img, 80, out); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, format, err := c.Decode(out)
	if err != nil {
		t.Fatalf("Decode webp: %v", err)
	}
	if format != "webp" {
		t.Errorf("format = %q; want webp", format)
	}
	if back.Bounds().Dx() != 4 || back.Bounds().Dy() != 3 {
		t.Errorf("decoded size = %v; want 4x3", back.Bounds())
	}
}

func TestWebP_DecodeGarbage(t *testing.T) {
	if _, _, err := NewWebP().Decode(strings.NewReader("not an image")); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}
