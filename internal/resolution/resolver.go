// Package resolution picks the stored object to stream for a requested quality label.
package resolution

import (
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// Resolve returns the variant registered for label, falling back to the original
// file for "original", an unknown label or a variant that was never produced.
func Resolve(label string, fileID uuid.UUID, set model.ResolutionSet) uuid.UUID {
	if label == "" || label == model.ResolutionOriginal || !model.IsKnownResolution(label) {
		return fileID
	}
	if id, ok := set[label]; ok && !id.IsNil() {
		return id
	}
	return fileID
}

// Available lists the labels a client may request: "original" followed by the produced
// variants in canonical order.
func Available(set model.ResolutionSet) []string {
	labels := []string{model.ResolutionOriginal}
	for _, l := range model.KnownResolutions {
		if id, ok := set[l]; ok && !id.IsNil() {
			labels = append(labels, l)
		}
	}
	return labels
}
