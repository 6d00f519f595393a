package transcode

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEncodingFailure = errors.New("encoding failed")

// EncodingError reports an encoder process that exited non-zero.
type EncodingError struct {
	Label    string
	ExitCode int
	Stderr   string
}

func (e *EncodingError) Error() string {
	msg := fmt.Sprintf("%s: encoder exited with code %d", e.Label, e.ExitCode)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (e *EncodingError) Unwrap() error { return ErrEncodingFailure }

// TargetFailure is one target that produced no variant.
type TargetFailure struct {
	Label string
	Err   error
}

// PartialError is returned alongside the variants that were produced when some targets failed.
type PartialError struct {
	Failures []TargetFailure
}

func (e *PartialError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Label+": "+f.Err.Error())
	}
	return fmt.Sprintf("%d target(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

func (e *PartialError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Labels lists the failed targets in the order they were attempted.
func (e *PartialError) Labels() []string {
	labels := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		labels = append(labels, f.Label)
	}
	return labels
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
