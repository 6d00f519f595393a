package video

import "errors"

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrNoThumbnail      = errors.New("no thumbnail available")
	ErrInvalidThumbnail = errors.New("invalid thumbnail")
)
