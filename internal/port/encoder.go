package port

import "context"

// EncodeRequest describes one invocation of the external encoder.
type EncodeRequest struct {
	InputPath    string
	OutputPath   string
	Height       int
	VideoBitrate string
	AudioBitrate string
}

// EncodeResult is the outcome of a finished encoder process.
type EncodeResult struct {
	ExitCode int
	Stderr   string
}

// Encoder runs the external encoder synchronously.
// A non-nil error means the process could not be run at all; a process that ran
// and failed is reported through EncodeResult.ExitCode.
type Encoder interface {
	Encode(ctx context.Context, req EncodeRequest) (EncodeResult, error)
}
