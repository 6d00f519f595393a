package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

type TranscodeStatus string

const (
	TranscodeStatusPending    TranscodeStatus = "pending"
	TranscodeStatusProcessing TranscodeStatus = "processing"
	TranscodeStatusReady      TranscodeStatus = "ready"
	TranscodeStatusFailed     TranscodeStatus = "failed"
)

const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
)

// Video is the media entity owning an original file, its variants and an optional thumbnail.
type Video struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Visibility      string          `json:"visibility"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	FileID          uuid.UUID       `json:"file_id"`
	ThumbnailID     *uuid.UUID      `json:"thumbnail_id,omitempty"`
	Resolutions     ResolutionSet   `json:"resolutions"`
	TranscodeStatus TranscodeStatus `json:"transcode_status"`
	FailureMessage  *string         `json:"failure_message,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ObjectIDs lists every stored object referenced by the video, variants first.
func (v *Video) ObjectIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(v.Resolutions)+2)
	for _, label := range KnownResolutions {
		if id, ok := v.Resolutions[label]; ok {
			ids = append(ids, id)
		}
	}
	if v.ThumbnailID != nil {
		ids = append(ids, *v.ThumbnailID)
	}
	return append(ids, v.FileID)
}

// ResolutionSet maps a quality label to the stored object holding that variant.
type ResolutionSet map[string]uuid.UUID

func (r ResolutionSet) Value() (driver.Value, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(map[string]uuid.UUID(r))
	if err != nil {
		return nil, fmt.Errorf("marshal ResolutionSet: %w", err)
	}
	return b, nil
}

func (r *ResolutionSet) Scan(src interface{}) error {
	if src == nil {
		*r = ResolutionSet{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("ResolutionSet.Scan: expected []byte, got %T", src)
	}
	out := ResolutionSet{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal ResolutionSet: %w", err)
	}
	*r = out
	return nil
}
