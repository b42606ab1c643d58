package tag

import (
	"context"

	"timelineforum/internal/core/tag"
	"timelineforum/internal/core/timeline"
)

type TagRepository interface {
	// Create returns apperr.ErrConflict (wrapped) when the normalized name
	// already exists, so the resolver can fall back to a lookup.
	Create(ctx context.Context, t *tag.Tag) (*tag.Tag, error)
	FindByName(ctx context.Context, name string) (*tag.Tag, error)
	SetTimeline(ctx context.Context, tagID, timelineID string) error
}

// ResolvedTag pairs a tag with its companion timeline. Created reports
// whether the tag was created by this resolution.
type ResolvedTag struct {
	Tag      *tag.Tag
	Timeline *timeline.Timeline
	Created  bool
}

type TagDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TimelineID string `json:"timeline_id,omitempty"`
}
