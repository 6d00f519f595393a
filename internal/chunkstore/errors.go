package chunkstore

import "errors"

var (
	ErrNotFound     = errors.New("object not found")
	ErrInvalidRange = errors.New("invalid byte range")
	ErrAllocation   = errors.New("storage backend unavailable")
	ErrIO           = errors.New("storage i/o error")
	ErrUnauthorized = errors.New("unauthorized to access storage")
	ErrHandleClosed = errors.New("write handle already closed")
)
