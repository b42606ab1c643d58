package comment

import (
	"context"

	"timelineforum/internal/core/comment"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*comment.Comment, error)
	ListByEvent(ctx context.Context, eventID string) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	PostID    string `json:"post_id,omitempty"`
	EventID   string `json:"event_id,omitempty"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}
