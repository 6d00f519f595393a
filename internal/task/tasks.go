package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeTranscodeVideo = "video:transcode"
	QueueTranscode     = "transcode"

	transcodeMaxRetry = 3
	transcodeTimeout  = 2 * time.Hour
)

type TranscodeVideoPayload struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
}

// NewTranscodeVideoTask creates an Asynq task for transcoding a video by ID.
func NewTranscodeVideoTask(videoID string) (*asynq.Task, error) {
	p := TranscodeVideoPayload{VideoID: videoID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal transcode-video payload: %w", err)
	}
	return asynq.NewTask(TypeTranscodeVideo, data,
		asynq.Queue(QueueTranscode),
		asynq.MaxRetry(transcodeMaxRetry),
		asynq.Timeout(transcodeTimeout),
	), nil
}

// ParseTranscodeVideoPayload parses the task payload to TranscodeVideoPayload.
func ParseTranscodeVideoPayload(t *asynq.Task) (TranscodeVideoPayload, error) {
	var p TranscodeVideoPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return TranscodeVideoPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
