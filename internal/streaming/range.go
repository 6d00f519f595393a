package streaming

import (
	"errors"
	"strconv"
	"strings"

	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
)

var (
	ErrMalformedRange     = errors.New("malformed range header")
	ErrUnsatisfiableRange = errors.New("range not satisfiable")
)

// ParseRange interprets a single "bytes=<start>-[<end>]" Range header against an object
// of the given length. An empty header yields a nil range (the whole object).
// An end beyond the object is clamped to its last byte. Suffix ranges and multiple
// ranges are not supported and reported as malformed.
func ParseRange(header string, length int64) (*chunkstore.ByteRange, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, nil
	}

	const unit = "bytes="
	if len(header) < len(unit) || !strings.EqualFold(header[:len(unit)], unit) {
		return nil, ErrMalformedRange
	}
	spec := strings.TrimSpace(header[len(unit):])
	if strings.Contains(spec, ",") {
		return nil, ErrMalformedRange
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, ErrMalformedRange
	}
	startStr, endStr = strings.TrimSpace(startStr), strings.TrimSpace(endStr)

	start, ok := parseOffset(startStr)
	if !ok {
		return nil, ErrMalformedRange
	}

	end := length - 1
	if endStr != "" {
		e, ok := parseOffset(endStr)
		if !ok || e < start {
			return nil, ErrMalformedRange
		}
		end = min(e, length-1)
	}

	if start >= length {
		return nil, ErrUnsatisfiableRange
	}
	return &chunkstore.ByteRange{Start: start, End: end}, nil
}

func parseOffset(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
