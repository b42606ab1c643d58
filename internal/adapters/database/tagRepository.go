package database

import (
	"context"

	"timelineforum/internal/config"
	"timelineforum/internal/core/apperr"
	tagEntity "timelineforum/internal/core/tag"
)

type TagRepositoryDatabase struct{}

func NewTagRepositoryDatabase() *TagRepositoryDatabase {
	return &TagRepositoryDatabase{}
}

// Create relies on the unique index over name: a concurrent insert of the
// same normalized tag comes back as apperr.ErrConflict for the resolver to
// retry as a lookup.
func (repo *TagRepositoryDatabase) Create(ctx context.Context, t *tagEntity.Tag) (*tagEntity.Tag, error) {
	if err := config.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (repo *TagRepositoryDatabase) FindByName(ctx context.Context, name string) (*tagEntity.Tag, error) {
	var t tagEntity.Tag
	if err := config.DB.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (repo *TagRepositoryDatabase) SetTimeline(ctx context.Context, tagID, timelineID string) error {
	res := config.DB.WithContext(ctx).Model(&tagEntity.Tag{}).
		Where("id = ?", tagID).
		Update("timeline_id", timelineID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
