// Package encoder runs the external ffmpeg binary, one process per target resolution.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
)

const (
	DefaultAudioBitrate = "128k"
	maxStderrBytes      = 8 << 10
	waitDelay           = 5 * time.Second
)

type FFmpeg struct {
	path string
}

// compile-time check: *FFmpeg must satisfy port.Encoder
var _ port.Encoder = (*FFmpeg)(nil)

func NewFFmpeg(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{path: path}
}

// Args builds the ffmpeg command line for one target: H.264 video scaled to the
// target height (width kept even and proportional) with AAC audio.
func Args(req port.EncodeRequest) []string {
	audio := req.AudioBitrate
	if audio == "" {
		audio = DefaultAudioBitrate
	}
	return []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", req.InputPath,
		"-vf", "scale=-2:" + strconv.Itoa(req.Height),
		"-c:v", "libx264",
		"-b:v", req.VideoBitrate,
		"-c:a", "aac",
		"-b:a", audio,
		req.OutputPath,
	}
}

// Encode blocks until the process exits. A process that ran and exited non-zero is not
// an error: its exit code and the tail of its stderr are returned in the result.
func (f *FFmpeg) Encode(ctx context.Context, req port.EncodeRequest) (port.EncodeResult, error) {
	logger.Infof(ctx, "encoding %q to %dp at %s...", req.InputPath, req.Height, req.VideoBitrate)

	cmd := exec.CommandContext(ctx, f.path, Args(req)...)
	stderr := &tailBuffer{max: maxStderrBytes}
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	res := port.EncodeResult{Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}
		return res, nil
	}
	return res, fmt.Errorf("run %s: %w", f.path, err)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= b.max {
		b.buf = append(b.buf[:0], p[len(p)-b.max:]...)
		return n, nil
	}
	if over := len(b.buf) + len(p) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	b.buf = append(b.buf, p...)
	return n, nil
}

func (b *tailBuffer) String() string { return string(b.buf) }
