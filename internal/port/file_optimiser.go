package port

import "io"

// FileOptimiser re-encodes uploaded images, returning the new content and its mime-type.
type FileOptimiser interface {
	Compress(mimeType string, r io.Reader) (io.ReadCloser, string, error)
}
