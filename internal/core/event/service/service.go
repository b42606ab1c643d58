package eventapp

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"timelineforum/internal/core/apperr"
	eventEntity "timelineforum/internal/core/event"
	eventPort "timelineforum/internal/ports/event"
	previewPort "timelineforum/internal/ports/preview"
	tagPort "timelineforum/internal/ports/tag"
	timelinePort "timelineforum/internal/ports/timeline"
)

// TagResolver is the slice of the tag use case the event service needs.
type TagResolver interface {
	Resolve(ctx context.Context, rawNames []string, actingUserID string) ([]*tagPort.ResolvedTag, error)
}

type EventService struct {
	EventRepository    eventPort.EventRepository
	TimelineRepository timelinePort.TimelineRepository
	Tags               TagResolver
	PreviewFetcher     previewPort.Fetcher
	PreviewCache       previewPort.Cache
	Logger             *zap.Logger
}

func NewEventService(
	eventRepo eventPort.EventRepository,
	timelineRepo timelinePort.TimelineRepository,
	tags TagResolver,
	fetcher previewPort.Fetcher,
	cache previewPort.Cache,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		EventRepository:    eventRepo,
		TimelineRepository: timelineRepo,
		Tags:               tags,
		PreviewFetcher:     fetcher,
		PreviewCache:       cache,
		Logger:             logger,
	}
}

// acceptedDateLayouts covers the timestamp shapes clients send for
// event_date.
var acceptedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable event_date %q", apperr.ErrValidation, raw)
}

// CreateEvent persists a new event in its home timeline and propagates it
// into every companion timeline implied by its tags. Companion timelines
// equal to the home timeline are skipped so retrieval never sees the event
// twice. Tags are resolved before the insert and the event row plus all of
// its links commit as one transaction; a failed request leaves no event
// behind.
func (s *EventService) CreateEvent(ctx context.Context, in eventPort.CreateEventInput, timelineID, actingUserID string) (*eventPort.EventDTO, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if in.EventDate == "" {
		return nil, fmt.Errorf("%w: event_date is required", apperr.ErrValidation)
	}
	eventDate, err := parseEventDate(in.EventDate)
	if err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = eventEntity.DefaultType
	}

	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid acting user id", apperr.ErrValidation)
	}

	home, err := s.TimelineRepository.FindByID(ctx, timelineID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.Tags.Resolve(ctx, in.Tags, actingUserID)
	if err != nil {
		return nil, err
	}
	tagIDs := make([]string, 0, len(resolved))
	refTimelineIDs := make([]string, 0, len(resolved))
	for _, rt := range resolved {
		tagIDs = append(tagIDs, rt.Tag.ID.String())
		if rt.Timeline.ID != home.ID {
			refTimelineIDs = append(refTimelineIDs, rt.Timeline.ID.String())
		}
	}

	ev := &eventEntity.Event{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       in.Title,
		Description: in.Description,
		EventDate:   eventDate,
		Type:        in.Type,
		URL:         in.URL,
		MediaURL:    in.MediaURL,
		MediaType:   in.MediaType,
		TimelineID:  home.ID,
		CreatedBy:   uid,
	}
	s.attachPreview(ctx, ev)

	created, err := s.EventRepository.Create(ctx, ev, tagIDs, refTimelineIDs)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("event created",
		zap.String("event_id", created.ID.String()),
		zap.String("timeline_id", home.ID.String()),
		zap.Int("tags", len(resolved)))
	return toDTO(created, resolved), nil
}

// EventsForTimeline returns the deduplicated union of events homed in the
// timeline and events referencing it, ordered by event_date then id. The
// union is computed per call, never materialized.
func (s *EventService) EventsForTimeline(ctx context.Context, timelineID string) ([]*eventPort.EventDTO, error) {
	if _, err := s.TimelineRepository.FindByID(ctx, timelineID); err != nil {
		return nil, err
	}

	events, err := s.EventRepository.ListForTimeline(ctx, timelineID)
	if err != nil {
		return nil, err
	}

	out := make([]*eventPort.EventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, toDTO(ev, nil))
	}
	return out, nil
}

// attachPreview enriches the event with link metadata when a URL is present.
// Any failure downgrades to "no preview"; the parent operation never fails
// over it.
func (s *EventService) attachPreview(ctx context.Context, ev *eventEntity.Event) {
	if ev.URL == "" || s.PreviewFetcher == nil {
		return
	}

	if s.PreviewCache != nil {
		if p, err := s.PreviewCache.Get(ctx, ev.URL); err == nil && p != nil {
			ev.URLTitle, ev.URLDescription, ev.URLImage = p.Title, p.Description, p.Image
			return
		}
	}

	p, err := s.PreviewFetcher.Fetch(ctx, ev.URL)
	if err != nil || p == nil {
		if err != nil {
			s.Logger.Warn("link preview fetch failed", zap.String("url", ev.URL), zap.Error(err))
		}
		return
	}
	ev.URLTitle, ev.URLDescription, ev.URLImage = p.Title, p.Description, p.Image

	if s.PreviewCache != nil {
		if err := s.PreviewCache.Set(ctx, ev.URL, p); err != nil {
			s.Logger.Warn("link preview cache write failed", zap.String("url", ev.URL), zap.Error(err))
		}
	}
}

func toDTO(ev *eventEntity.Event, resolved []*tagPort.ResolvedTag) *eventPort.EventDTO {
	dto := &eventPort.EventDTO{
		ID:             ev.ID.String(),
		Title:          ev.Title,
		Description:    ev.Description,
		EventDate:      ev.EventDate.Format(time.RFC3339),
		Type:           ev.Type,
		URL:            ev.URL,
		URLTitle:       ev.URLTitle,
		URLDescription: ev.URLDescription,
		URLImage:       ev.URLImage,
		MediaURL:       ev.MediaURL,
		MediaType:      ev.MediaType,
		TimelineID:     ev.TimelineID.String(),
		CreatedBy:      ev.CreatedBy.String(),
		CreatedAt:      ev.CreatedAt.Format(time.RFC3339),
		Tags:           make([]tagPort.TagDTO, 0, len(ev.Tags)),
	}

	if resolved != nil {
		for _, rt := range resolved {
			dto.Tags = append(dto.Tags, tagPort.TagDTO{
				ID:         rt.Tag.ID.String(),
				Name:       rt.Tag.Name,
				TimelineID: rt.Timeline.ID.String(),
			})
		}
		return dto
	}

	for _, t := range ev.Tags {
		td := tagPort.TagDTO{ID: t.ID.String(), Name: t.Name}
		if t.TimelineID != nil {
			td.TimelineID = t.TimelineID.String()
		}
		dto.Tags = append(dto.Tags, td)
	}
	return dto
}
