package post

import (
	"context"
	"time"

	"timelineforum/internal/core/post"
)

// ScoreFunc computes a promotion score for a post at a given instant. It is
// passed into the repository so the transactional sweep can reuse the pure
// scorer without the adapter importing it.
type ScoreFunc func(p *post.Post, now time.Time) float64

type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	// ListByTimeline returns the timeline's posts ordered by stored
	// promotion score descending.
	ListByTimeline(ctx context.Context, timelineID string) ([]*post.Post, error)
	// Upvote increments the counter atomically and returns the new value.
	Upvote(ctx context.Context, id string) (int, error)
	SetSourceCount(ctx context.Context, id string, count int) error
}

// PromotionRepository covers the transactional pieces of the promotion
// workflow. Both operations run inside a single database transaction with the
// affected rows locked, so concurrent sweeps or votes never lose updates or
// double-promote.
type PromotionRepository interface {
	// SweepTimeline picks up to limit unpromoted posts ordered by stored
	// score descending, recomputes and persists each score, and materializes
	// an event for every post whose fresh score clears threshold. Returns the
	// ids of newly promoted posts. The whole batch commits or rolls back as
	// one unit.
	SweepTimeline(ctx context.Context, timelineID string, limit int, score ScoreFunc, threshold float64) ([]string, error)
	// VoteForPromotion increments promotion_votes by one, recomputes and
	// persists the score, and returns it.
	VoteForPromotion(ctx context.Context, postID string, score ScoreFunc) (float64, error)
}

// CreatePostInput carries the client-supplied fields for a new post. Title,
// Content and EventDate are required; the rest are optional.
type CreatePostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	EventDate string `json:"event_date"`
	URL       string `json:"url"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

type PostDTO struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	EventDate       string  `json:"event_date"`
	URL             string  `json:"url,omitempty"`
	TimelineID      string  `json:"timeline_id"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
	Upvotes         int     `json:"upvotes"`
	PromotedToEvent bool    `json:"promoted_to_event"`
	PromotionScore  float64 `json:"promotion_score"`
	SourceCount     int     `json:"source_count"`
	PromotionVotes  int     `json:"promotion_votes"`
}
