package promotionapp

import (
	"context"

	"go.uber.org/zap"
	"timelineforum/internal/core/promotion"
	postPort "timelineforum/internal/ports/post"
	timelinePort "timelineforum/internal/ports/timeline"
)

// DefaultSweepLimit bounds how many candidates one sweep considers.
const DefaultSweepLimit = 5

type PromotionService struct {
	PromotionRepository postPort.PromotionRepository
	TimelineRepository  timelinePort.TimelineRepository
	Logger              *zap.Logger
}

func NewPromotionService(
	promoRepo postPort.PromotionRepository,
	timelineRepo timelinePort.TimelineRepository,
	logger *zap.Logger,
) *PromotionService {
	return &PromotionService{
		PromotionRepository: promoRepo,
		TimelineRepository:  timelineRepo,
		Logger:              logger,
	}
}

// CheckPromotions recomputes scores for the timeline's top unpromoted posts
// and promotes those clearing the threshold. Returns the ids of newly
// promoted posts; an empty slice is a normal outcome. The underlying batch is
// one transaction, so a mid-batch failure promotes nothing.
func (s *PromotionService) CheckPromotions(ctx context.Context, timelineID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSweepLimit
	}

	if _, err := s.TimelineRepository.FindByID(ctx, timelineID); err != nil {
		return nil, err
	}

	promoted, err := s.PromotionRepository.SweepTimeline(ctx, timelineID, limit, promotion.Score, promotion.Threshold)
	if err != nil {
		return nil, err
	}

	if len(promoted) > 0 {
		s.Logger.Info("promotion sweep finished",
			zap.String("timeline_id", timelineID),
			zap.Int("promoted", len(promoted)))
	}
	return promoted, nil
}

// VoteForPromotion records one promote vote and returns the fresh score. It
// deliberately does not promote: votes change rank, promotion happens only in
// the batched sweep.
func (s *PromotionService) VoteForPromotion(ctx context.Context, postID, userID string) (float64, error) {
	score, err := s.PromotionRepository.VoteForPromotion(ctx, postID, promotion.Score)
	if err != nil {
		return 0, err
	}

	s.Logger.Info("promotion vote recorded",
		zap.String("post_id", postID),
		zap.String("user_id", userID),
		zap.Float64("score", score))
	return score, nil
}
