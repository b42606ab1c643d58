package database

import (
	"context"

	"gorm.io/gorm"
	"timelineforum/internal/config"
	eventEntity "timelineforum/internal/core/event"
	tagEntity "timelineforum/internal/core/tag"
	timelineEntity "timelineforum/internal/core/timeline"
)

type EventRepositoryDatabase struct{}

func NewEventRepositoryDatabase() *EventRepositoryDatabase {
	return &EventRepositoryDatabase{}
}

// Create inserts the event row, its tag links and its timeline references as
// one transaction, so a failure partway through rolls the whole event back.
func (repo *EventRepositoryDatabase) Create(ctx context.Context, ev *eventEntity.Event, tagIDs, refTimelineIDs []string) (*eventEntity.Event, error) {
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}

		for _, tagID := range tagIDs {
			var t tagEntity.Tag
			if err := tx.Where("id = ?", tagID).First(&t).Error; err != nil {
				return err
			}
			if err := tx.Model(ev).Association("Tags").Append(&t); err != nil {
				return err
			}
		}

		for _, timelineID := range refTimelineIDs {
			var tl timelineEntity.Timeline
			if err := tx.Where("id = ?", timelineID).First(&tl).Error; err != nil {
				return err
			}
			if err := tx.Model(ev).Association("ReferencedIn").Append(&tl); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return ev, nil
}

func (repo *EventRepositoryDatabase) FindByID(ctx context.Context, id string) (*eventEntity.Event, error) {
	var ev eventEntity.Event
	if err := config.DB.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&ev).Error; err != nil {
		return nil, translate(err)
	}
	return &ev, nil
}

// ListForTimeline unions events homed in the timeline with events referenced
// into it via event_timeline_refs. DISTINCT collapses the case where an event
// both lives in the timeline and references it; ordering is by the
// user-meaningful event_date with id as a deterministic tiebreak.
func (repo *EventRepositoryDatabase) ListForTimeline(ctx context.Context, timelineID string) ([]*eventEntity.Event, error) {
	var events []*eventEntity.Event
	err := config.DB.WithContext(ctx).
		Distinct("events.*").
		Joins("LEFT JOIN event_timeline_refs refs ON refs.event_id = events.id").
		Where("events.timeline_id = ? OR refs.timeline_id = ?", timelineID, timelineID).
		Order("events.event_date ASC, events.id ASC").
		Preload("Tags").
		Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

