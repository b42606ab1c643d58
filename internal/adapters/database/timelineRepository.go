package database

import (
	"context"

	"timelineforum/internal/config"
	"timelineforum/internal/core/apperr"
	timelineEntity "timelineforum/internal/core/timeline"
)

type TimelineRepositoryDatabase struct{}

func NewTimelineRepositoryDatabase() *TimelineRepositoryDatabase {
	return &TimelineRepositoryDatabase{}
}

func (repo *TimelineRepositoryDatabase) Create(ctx context.Context, tl *timelineEntity.Timeline) (*timelineEntity.Timeline, error) {
	if err := config.DB.WithContext(ctx).Create(tl).Error; err != nil {
		return nil, translate(err)
	}
	return tl, nil
}

func (repo *TimelineRepositoryDatabase) FindByID(ctx context.Context, id string) (*timelineEntity.Timeline, error) {
	var tl timelineEntity.Timeline
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&tl).Error; err != nil {
		return nil, translate(err)
	}
	return &tl, nil
}

func (repo *TimelineRepositoryDatabase) FindByName(ctx context.Context, name string) (*timelineEntity.Timeline, error) {
	var tl timelineEntity.Timeline
	if err := config.DB.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&tl).Error; err != nil {
		return nil, translate(err)
	}
	return &tl, nil
}

func (repo *TimelineRepositoryDatabase) List(ctx context.Context) ([]*timelineEntity.Timeline, error) {
	var timelines []*timelineEntity.Timeline
	if err := config.DB.WithContext(ctx).Order("created_at ASC").Find(&timelines).Error; err != nil {
		return nil, translate(err)
	}
	return timelines, nil
}

func (repo *TimelineRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := config.DB.WithContext(ctx).Where("id = ?", id).Delete(&timelineEntity.Timeline{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
