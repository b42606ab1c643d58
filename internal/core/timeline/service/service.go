package timelineapp

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"timelineforum/internal/core/apperr"
	timelineEntity "timelineforum/internal/core/timeline"
	timelinePort "timelineforum/internal/ports/timeline"
)

type TimelineService struct {
	TimelineRepository timelinePort.TimelineRepository
	Logger             *zap.Logger
}

func NewTimelineService(timelineRepo timelinePort.TimelineRepository, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		TimelineRepository: timelineRepo,
		Logger:             logger,
	}
}

// displayName applies the single case policy for timeline names: first letter
// upper, rest lower.
func displayName(raw string) string {
	r := []rune(strings.ToLower(strings.TrimSpace(raw)))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// CreateTimeline creates a user timeline. Names are unique case-insensitively;
// a duplicate surfaces as a conflict to the caller.
func (s *TimelineService) CreateTimeline(ctx context.Context, name, description, actingUserID string) (*timelinePort.TimelineDTO, error) {
	name = displayName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid acting user id", apperr.ErrValidation)
	}

	tl := &timelineEntity.Timeline{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        name,
		Description: description,
		CreatedBy:   uid,
	}
	created, err := s.TimelineRepository.Create(ctx, tl)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("timeline created", zap.String("name", name))
	return toDTO(created), nil
}

func (s *TimelineService) GetTimeline(ctx context.Context, id string) (*timelinePort.TimelineDTO, error) {
	tl, err := s.TimelineRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(tl), nil
}

func (s *TimelineService) ListTimelines(ctx context.Context) ([]*timelinePort.TimelineDTO, error) {
	timelines, err := s.TimelineRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*timelinePort.TimelineDTO, 0, len(timelines))
	for _, tl := range timelines {
		out = append(out, toDTO(tl))
	}
	return out, nil
}

// DeleteTimeline removes a user timeline. The reserved General timeline is
// never deletable.
func (s *TimelineService) DeleteTimeline(ctx context.Context, id string) error {
	tl, err := s.TimelineRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tl.Name == timelineEntity.GeneralName {
		return fmt.Errorf("%w: the %s timeline cannot be deleted", apperr.ErrValidation, timelineEntity.GeneralName)
	}
	return s.TimelineRepository.Delete(ctx, id)
}

// EnsureGeneral seeds the reserved fallback timeline when missing. Called
// once at startup.
func (s *TimelineService) EnsureGeneral(ctx context.Context, systemUserID string) (*timelinePort.TimelineDTO, error) {
	tl, err := s.TimelineRepository.FindByName(ctx, timelineEntity.GeneralName)
	if err == nil {
		return toDTO(tl), nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}
	return s.CreateTimeline(ctx, timelineEntity.GeneralName, "General timeline for uncategorized posts", systemUserID)
}

func toDTO(tl *timelineEntity.Timeline) *timelinePort.TimelineDTO {
	return &timelinePort.TimelineDTO{
		ID:          tl.ID.String(),
		Name:        tl.Name,
		Description: tl.Description,
		CreatedBy:   tl.CreatedBy.String(),
		CreatedAt:   tl.CreatedAt.Format(time.RFC3339),
	}
}
