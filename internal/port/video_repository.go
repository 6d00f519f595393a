package port

import (
	"context"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPendingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
