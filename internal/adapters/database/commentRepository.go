package database

import (
	"context"

	"timelineforum/internal/config"
	commentEntity "timelineforum/internal/core/comment"
)

type CommentRepositoryDatabase struct{}

func NewCommentRepositoryDatabase() *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *commentEntity.Comment) (*commentEntity.Comment, error) {
	if err := config.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) ListByPost(ctx context.Context, postID string) ([]*commentEntity.Comment, error) {
	var comments []*commentEntity.Comment
	err := config.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) ListByEvent(ctx context.Context, eventID string) ([]*commentEntity.Comment, error) {
	var comments []*commentEntity.Comment
	err := config.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}
