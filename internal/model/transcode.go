package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ResolutionOriginal = "original"
	Resolution360p     = "360p"
	Resolution720p     = "720p"
	Resolution1080p    = "1080p"
)

// KnownResolutions lists the variant labels in their canonical order.
var KnownResolutions = []string{Resolution360p, Resolution720p, Resolution1080p}

// IsKnownResolution reports whether label names a variant (not "original").
func IsKnownResolution(label string) bool {
	for _, l := range KnownResolutions {
		if l == label {
			return true
		}
	}
	return false
}

// TranscodeTarget is one output of the transcoding pipeline.
type TranscodeTarget struct {
	Label        string
	Height       int
	VideoBitrate string
}

// DefaultTranscodeTargets returns the built-in 360p/720p/1080p ladder.
func DefaultTranscodeTargets() []TranscodeTarget {
	return []TranscodeTarget{
		{Label: Resolution360p, Height: 360, VideoBitrate: "800k"},
		{Label: Resolution720p, Height: 720, VideoBitrate: "2500k"},
		{Label: Resolution1080p, Height: 1080, VideoBitrate: "5000k"},
	}
}

// ParseTranscodeTargets reads a comma separated list of label:height:bitrate triples,
// e.g. "360p:360:800k,720p:720:2500k". Order is preserved.
func ParseTranscodeTargets(s string) ([]TranscodeTarget, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no transcode targets given")
	}

	var targets []TranscodeTarget
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid transcode target %q: want label:height:bitrate", part)
		}
		label := fields[0]
		if !IsKnownResolution(label) {
			return nil, fmt.Errorf("unknown resolution label %q", label)
		}
		if seen[label] {
			return nil, fmt.Errorf("duplicate resolution label %q", label)
		}
		height, err := strconv.Atoi(fields[1])
		if err != nil || height <= 0 {
			return nil, fmt.Errorf("invalid height %q for %s", fields[1], label)
		}
		if fields[2] == "" {
			return nil, fmt.Errorf("missing bitrate for %s", label)
		}
		seen[label] = true
		targets = append(targets, TranscodeTarget{Label: label, Height: height, VideoBitrate: fields[2]})
	}
	return targets, nil
}
