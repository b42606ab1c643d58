package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timelineforum/internal/config"
	"timelineforum/internal/core/apperr"
	postEntity "timelineforum/internal/core/post"
)

type PostRepositoryDatabase struct{}

func NewPostRepositoryDatabase() *PostRepositoryDatabase {
	return &PostRepositoryDatabase{}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	if err := config.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*postEntity.Post, error) {
	var p postEntity.Post
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListByTimeline(ctx context.Context, timelineID string) ([]*postEntity.Post, error) {
	var posts []*postEntity.Post
	err := config.DB.WithContext(ctx).
		Where("timeline_id = ?", timelineID).
		Order("promotion_score DESC, created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// Upvote is a locked read-modify-write so two concurrent upvotes never lose
// an increment.
func (repo *PostRepositoryDatabase) Upvote(ctx context.Context, id string) (int, error) {
	var upvotes int
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p postEntity.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		p.Upvotes++
		upvotes = p.Upvotes
		return tx.Model(&p).Update("upvotes", p.Upvotes).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return upvotes, nil
}

func (repo *PostRepositoryDatabase) SetSourceCount(ctx context.Context, id string, count int) error {
	res := config.DB.WithContext(ctx).Model(&postEntity.Post{}).
		Where("id = ?", id).
		Update("source_count", count)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
