package workers

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	timelinePort "timelineforum/internal/ports/timeline"
)

// PromotionSweeper is the slice of the promotion use case the worker drives.
type PromotionSweeper interface {
	CheckPromotions(ctx context.Context, timelineID string, limit int) ([]string, error)
}

// PromotionWorker runs the batched promotion sweep across every timeline on a
// cron schedule. Votes and upvotes only change rank; this worker is the one
// place posts actually graduate into events.
type PromotionWorker struct {
	Promotions   PromotionSweeper
	TimelineRepo timelinePort.TimelineRepository
	Schedule     string
	Logger       *zap.Logger

	cron *cron.Cron
}

func NewPromotionWorker(
	promotions PromotionSweeper,
	timelineRepo timelinePort.TimelineRepository,
	schedule string,
	logger *zap.Logger,
) *PromotionWorker {
	return &PromotionWorker{
		Promotions:   promotions,
		TimelineRepo: timelineRepo,
		Schedule:     schedule,
		Logger:       logger,
	}
}

// Run starts the scheduler and blocks until the context is cancelled.
func (w *PromotionWorker) Run(ctx context.Context) {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.Schedule, func() { w.sweepAll(ctx) }); err != nil {
		w.Logger.Error("invalid promotion sweep schedule",
			zap.String("schedule", w.Schedule), zap.Error(err))
		return
	}

	w.Logger.Info("promotion worker started", zap.String("schedule", w.Schedule))
	w.cron.Start()

	<-ctx.Done()
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.Logger.Info("promotion worker stopped")
}

func (w *PromotionWorker) sweepAll(ctx context.Context) {
	timelines, err := w.TimelineRepo.List(ctx)
	if err != nil {
		w.Logger.Error("promotion sweep could not list timelines", zap.Error(err))
		return
	}

	total := 0
	for _, tl := range timelines {
		promoted, err := w.Promotions.CheckPromotions(ctx, tl.ID.String(), 0)
		if err != nil {
			w.Logger.Error("promotion sweep failed for timeline",
				zap.String("timeline_id", tl.ID.String()), zap.Error(err))
			continue
		}
		total += len(promoted)
	}

	if total > 0 {
		w.Logger.Info("promotion sweep promoted posts", zap.Int("count", total))
	}
}
