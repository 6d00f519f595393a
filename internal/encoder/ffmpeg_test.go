package encoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/port"
)

// fakeFFmpeg writes an executable shell script standing in for ffmpeg.
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}

func TestArgs(t *testing.T) {
	got := Args(port.EncodeRequest{InputPath: "in", OutputPath: "720p.mp4", Height: 720, VideoBitrate: "2500k"})
	want := []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", "in",
		"-vf", "scale=-2:720",
		"-c:v", "libx264",
		"-b:v", "2500k",
		"-c:a", "aac",
		"-b:a", "128k",
		"720p.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %v\nwant %v", got, want)
	}
}

func TestEncode_Success(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	// last argument is the output path
	bin := fakeFFmpeg(t, `echo "$@" > `+argsFile+`
for last; do :; done
printf 'video' > "$last"
`)

	out := filepath.Join(dir, "360p.mp4")
	res, err := NewFFmpeg(bin).Encode(context.Background(), port.EncodeRequest{
		InputPath: filepath.Join(dir, "input"), OutputPath: out, Height: 360, VideoBitrate: "800k", AudioBitrate: "96k",
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d; want 0", res.ExitCode)
	}
	if data, _ := os.ReadFile(out); string(data) != "video" {
		t.Errorf("output = %q; want video", data)
	}
	args, _ := os.ReadFile(argsFile)
	if !strings.Contains(string(args), "scale=-2:360") || !strings.Contains(string(args), "-b:a 96k") {
		t.Errorf("args = %q; missing scale or audio bitrate", args)
	}
}

func TestEncode_NonZeroExit(t *testing.T) {
	bin := fakeFFmpeg(t, "echo 'Unknown encoder libx264' >&2\nexit 3\n")

	res, err := NewFFmpeg(bin).Encode(context.Background(), port.EncodeRequest{OutputPath: "x.mp4", Height: 720, VideoBitrate: "1k"})
	if err != nil {
		t.Fatalf("Encode returned error for a failed process: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d; want 3", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "Unknown encoder") {
		t.Errorf("Stderr = %q; want the process output", res.Stderr)
	}
}

func TestEncode_MissingBinary(t *testing.T) {
	_, err := NewFFmpeg(filepath.Join(t.TempDir(), "nope")).Encode(context.Background(), port.EncodeRequest{Height: 360})
	if err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
}

func TestEncode_Cancelled(t *testing.T) {
	bin := fakeFFmpeg(t, "exec sleep 5\n")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewFFmpeg(bin).Encode(ctx, port.EncodeRequest{Height: 360})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v; want context.DeadlineExceeded", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("process was not killed on cancellation")
	}
}

func TestTailBuffer(t *testing.T) {
	b := &tailBuffer{max: 5}
	_, _ = b.Write([]byte("abc"))
	_, _ = b.Write([]byte("def"))
	if b.String() != "bcdef" {
		t.Errorf("tail = %q; want bcdef", b.String())
	}
	_, _ = b.Write([]byte("0123456789"))
	if b.String() != "56789" {
		t.Errorf("tail = %q; want 56789", b.String())
	}
}
