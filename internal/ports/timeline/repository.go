package timeline

import (
	"context"

	"timelineforum/internal/core/timeline"
)

type TimelineRepository interface {
	Create(ctx context.Context, tl *timeline.Timeline) (*timeline.Timeline, error)
	FindByID(ctx context.Context, id string) (*timeline.Timeline, error)
	// FindByName matches case-insensitively so "alpha" and "Alpha" resolve to
	// the same timeline.
	FindByName(ctx context.Context, name string) (*timeline.Timeline, error)
	List(ctx context.Context) ([]*timeline.Timeline, error)
	Delete(ctx context.Context, id string) error
}

type TimelineDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}
