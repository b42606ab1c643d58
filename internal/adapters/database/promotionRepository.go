package database

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timelineforum/internal/config"
	eventEntity "timelineforum/internal/core/event"
	postEntity "timelineforum/internal/core/post"
	postPort "timelineforum/internal/ports/post"
)

type PromotionRepositoryDatabase struct{}

func NewPromotionRepositoryDatabase() *PromotionRepositoryDatabase {
	return &PromotionRepositoryDatabase{}
}

// SweepTimeline runs the whole promotion batch inside one transaction. The
// candidate rows are locked for the duration, so a concurrent sweep of the
// same timeline serializes behind this one and re-reads promoted_to_event
// before considering any post again.
func (repo *PromotionRepositoryDatabase) SweepTimeline(ctx context.Context, timelineID string, limit int, score postPort.ScoreFunc, threshold float64) ([]string, error) {
	var promoted []string
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []*postEntity.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("timeline_id = ? AND promoted_to_event = ?", timelineID, false).
			Order("promotion_score DESC").
			Limit(limit).
			Find(&candidates).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, p := range candidates {
			p.PromotionScore = score(p, now)
			p.LastScoreUpdate = now

			if p.PromotionScore >= threshold {
				if err := tx.Create(materializeEvent(p)).Error; err != nil {
					return err
				}
				p.PromotedToEvent = true
				promoted = append(promoted, p.ID.String())
			}

			if err := tx.Model(p).Updates(map[string]interface{}{
				"promotion_score":   p.PromotionScore,
				"last_score_update": p.LastScoreUpdate,
				"promoted_to_event": p.PromotedToEvent,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return promoted, nil
}

// VoteForPromotion increments the vote counter under a row lock and persists
// the recomputed score.
func (repo *PromotionRepositoryDatabase) VoteForPromotion(ctx context.Context, postID string, score postPort.ScoreFunc) (float64, error) {
	var newScore float64
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p postEntity.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", postID).First(&p).Error; err != nil {
			return err
		}

		now := time.Now()
		p.PromotionVotes++
		p.PromotionScore = score(&p, now)
		p.LastScoreUpdate = now
		newScore = p.PromotionScore

		return tx.Model(&p).Updates(map[string]interface{}{
			"promotion_votes":   p.PromotionVotes,
			"promotion_score":   p.PromotionScore,
			"last_score_update": p.LastScoreUpdate,
		}).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return newScore, nil
}

// materializeEvent copies a post's descriptive, URL and media fields into a
// canonical event homed in the same timeline.
func materializeEvent(p *postEntity.Post) *eventEntity.Event {
	return &eventEntity.Event{
		ID:             uuid.Must(uuid.NewV4()),
		Title:          p.Title,
		Description:    p.Content,
		EventDate:      p.EventDate,
		Type:           eventEntity.DefaultType,
		URL:            p.URL,
		URLTitle:       p.URLTitle,
		URLDescription: p.URLDescription,
		URLImage:       p.URLImage,
		MediaURL:       p.MediaURL,
		MediaType:      p.MediaType,
		TimelineID:     p.TimelineID,
		CreatedBy:      p.CreatedBy,
	}
}
