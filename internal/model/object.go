package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// Well-known keys of StoredObject.Metadata.
const (
	MetaResolution     = "resolution"
	MetaOriginalFileID = "originalFileId"
	MetaVideoID        = "videoId"
	MetaUserID         = "userId"
	MetaIsThumbnail    = "isThumbnail"
	MetaContentType    = "contentType"
)

// StoredObject describes one immutable binary blob persisted as a sequence of chunks.
type StoredObject struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Length      int64     `json:"length"`
	ContentType string    `json:"content_type"`
	ChunkSize   int64     `json:"chunk_size"`
	ChunkCount  int64     `json:"chunk_count"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChunkRef locates one chunk of a stored object.
type ChunkRef struct {
	ObjectID uuid.UUID
	Index    int64
	Offset   int64
	Size     int64
}

// Metadata holds free-form string attributes of a stored object.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, fmt.Errorf("marshal Metadata: %w", err)
	}
	return b, nil
}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Metadata.Scan: expected []byte, got %T", src)
	}
	out := Metadata{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal Metadata: %w", err)
	}
	*m = out
	return nil
}
