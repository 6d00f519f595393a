package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeFFmpeg copies the input to the output path, the last argument, and
// fails with exit code 1 for any scale filter listed in FAIL_HEIGHTS.
const fakeFFmpeg = `#!/bin/sh
in=""
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-i" ]; then in="$a"; fi
  case "$a" in
    scale=*)
      for h in $FAIL_HEIGHTS; do
        case "$a" in *":$h"*) echo "encoder exploded at $h" >&2; exit 1;; esac
      done
      ;;
  esac
  prev="$a"
  out="$a"
done
cp "$in" "$out"
`

// WriteFakeFFmpeg drops an executable stand-in for ffmpeg into a temp dir
// and returns its path.
func WriteFakeFFmpeg(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(fakeFFmpeg), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}
