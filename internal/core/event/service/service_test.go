package eventapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	dbadapter "timelineforum/internal/adapters/database"
	"timelineforum/internal/config"
	"timelineforum/internal/core/apperr"
	eventEntity "timelineforum/internal/core/event"
	tagEntity "timelineforum/internal/core/tag"
	tagapp "timelineforum/internal/core/tag/service"
	timelineEntity "timelineforum/internal/core/timeline"
	eventPort "timelineforum/internal/ports/event"
	previewPort "timelineforum/internal/ports/preview"
	tagPort "timelineforum/internal/ports/tag"
)

func setupDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&timelineEntity.Timeline{},
		&tagEntity.Tag{},
		&eventEntity.Event{},
	))
	config.DB = db
}

func newService(t *testing.T, fetcher previewPort.Fetcher) (*EventService, *timelineEntity.Timeline, string) {
	t.Helper()
	setupDB(t)

	timelineRepo := dbadapter.NewTimelineRepositoryDatabase()
	tagSvc := tagapp.NewTagService(dbadapter.NewTagRepositoryDatabase(), timelineRepo, zap.NewNop())
	svc := NewEventService(dbadapter.NewEventRepositoryDatabase(), timelineRepo, tagSvc, fetcher, nil, zap.NewNop())

	userID := uuid.Must(uuid.NewV4())
	home, err := timelineRepo.Create(context.Background(), &timelineEntity.Timeline{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "Home",
		CreatedBy: userID,
	})
	require.NoError(t, err)

	return svc, home, userID.String()
}

type stubFetcher struct {
	preview *previewPort.Preview
	err     error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*previewPort.Preview, error) {
	return s.preview, s.err
}

type stubResolver struct {
	resolved []*tagPort.ResolvedTag
	err      error
}

func (s *stubResolver) Resolve(ctx context.Context, rawNames []string, actingUserID string) ([]*tagPort.ResolvedTag, error) {
	return s.resolved, s.err
}

func TestCreateEventValidation(t *testing.T) {
	svc, home, userID := newService(t, nil)

	testCases := []struct {
		name string
		in   eventPort.CreateEventInput
	}{
		{name: "missing title", in: eventPort.CreateEventInput{EventDate: "2024-01-01T00:00:00"}},
		{name: "missing event_date", in: eventPort.CreateEventInput{Title: "Launch"}},
		{name: "garbage event_date", in: eventPort.CreateEventInput{Title: "Launch", EventDate: "next tuesday"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), tc.in, home.ID.String(), userID)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestCreateEventDefaultsType(t *testing.T) {
	svc, home, userID := newService(t, nil)

	dto, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Launch",
		EventDate: "2024-01-01T00:00:00",
	}, home.ID.String(), userID)
	require.NoError(t, err)
	assert.Equal(t, eventEntity.DefaultType, dto.Type)
}

func TestCreateEventUnknownTimeline(t *testing.T) {
	svc, _, userID := newService(t, nil)

	_, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Launch",
		EventDate: "2024-01-01T00:00:00",
	}, uuid.Must(uuid.NewV4()).String(), userID)
	assert.True(t, apperr.IsNotFound(err))
}

// An event tagged "alpha" must be visible both in its home timeline and in
// the companion timeline Alpha, exactly once in each.
func TestCreateEventPropagatesToCompanionTimelines(t *testing.T) {
	svc, home, userID := newService(t, nil)

	dto, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Launch",
		EventDate: "2024-01-01T00:00:00",
		Tags:      []string{"alpha"},
	}, home.ID.String(), userID)
	require.NoError(t, err)
	require.Len(t, dto.Tags, 1)
	assert.Equal(t, "alpha", dto.Tags[0].Name)

	companion, err := svc.TimelineRepository.FindByName(context.Background(), "Alpha")
	require.NoError(t, err)

	homeEvents, err := svc.EventsForTimeline(context.Background(), home.ID.String())
	require.NoError(t, err)
	require.Len(t, homeEvents, 1)
	assert.Equal(t, dto.ID, homeEvents[0].ID)

	companionEvents, err := svc.EventsForTimeline(context.Background(), companion.ID.String())
	require.NoError(t, err)
	require.Len(t, companionEvents, 1)
	assert.Equal(t, dto.ID, companionEvents[0].ID)
}

// When the companion timeline of a tag IS the home timeline, no reference is
// added and the event appears exactly once.
func TestCreateEventDedupsWhenCompanionIsHome(t *testing.T) {
	svc, home, userID := newService(t, nil)

	dto, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Launch",
		EventDate: "2024-01-01T00:00:00",
		Tags:      []string{"home"},
	}, home.ID.String(), userID)
	require.NoError(t, err)

	events, err := svc.EventsForTimeline(context.Background(), home.ID.String())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, dto.ID, events[0].ID)

	var refs int64
	require.NoError(t, config.DB.Table("event_timeline_refs").Count(&refs).Error)
	assert.Zero(t, refs)
}

func TestEventsForTimelineOrderedByEventDate(t *testing.T) {
	svc, home, userID := newService(t, nil)

	for _, date := range []string{"2024-03-01", "2024-01-01", "2024-02-01"} {
		_, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
			Title:     "Event " + date,
			EventDate: date,
		}, home.ID.String(), userID)
		require.NoError(t, err)
	}

	events, err := svc.EventsForTimeline(context.Background(), home.ID.String())
	require.NoError(t, err)
	require.Len(t, events, 3)

	var prev time.Time
	for _, ev := range events {
		parsed, err := time.Parse(time.RFC3339, ev.EventDate)
		require.NoError(t, err)
		assert.False(t, parsed.Before(prev))
		prev = parsed
	}
}

// Newly added references show up on the next retrieval; the union is
// recomputed per call.
func TestEventsForTimelineReflectsNewReferences(t *testing.T) {
	svc, home, userID := newService(t, nil)

	other, err := svc.TimelineRepository.Create(context.Background(), &timelineEntity.Timeline{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "Other",
		CreatedBy: uuid.FromStringOrNil(userID),
	})
	require.NoError(t, err)

	before, err := svc.EventsForTimeline(context.Background(), other.ID.String())
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Shared",
		EventDate: "2024-01-01",
		Tags:      []string{"other"},
	}, home.ID.String(), userID)
	require.NoError(t, err)

	after, err := svc.EventsForTimeline(context.Background(), other.ID.String())
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

// A failure during tag resolution happens before the insert, so the request
// errors with no event row left behind.
func TestCreateEventFailedTagResolutionLeavesNoRow(t *testing.T) {
	svc, home, userID := newService(t, nil)
	svc.Tags = &stubResolver{err: errors.New("store unavailable")}

	_, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Launch",
		EventDate: "2024-01-01",
		Tags:      []string{"alpha"},
	}, home.ID.String(), userID)
	require.Error(t, err)

	var events int64
	require.NoError(t, config.DB.Model(&eventEntity.Event{}).Count(&events).Error)
	assert.Zero(t, events)
}

// The insert and its tag/reference links are one transaction: when linking
// fails partway through, the event row is rolled back too.
func TestCreateEventRollsBackOnLinkFailure(t *testing.T) {
	svc, home, userID := newService(t, nil)
	svc.Tags = &stubResolver{resolved: []*tagPort.ResolvedTag{{
		Tag:      &tagEntity.Tag{ID: uuid.Must(uuid.NewV4()), Name: "ghost"},
		Timeline: home,
	}}}

	_, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
		Title:     "Launch",
		EventDate: "2024-01-01",
		Tags:      []string{"ghost"},
	}, home.ID.String(), userID)
	require.Error(t, err)

	var events int64
	require.NoError(t, config.DB.Model(&eventEntity.Event{}).Count(&events).Error)
	assert.Zero(t, events)

	var links int64
	require.NoError(t, config.DB.Table("event_tags").Count(&links).Error)
	assert.Zero(t, links)
}

func TestPreviewEnrichment(t *testing.T) {
	t.Run("successful fetch fills url fields", func(t *testing.T) {
		svc, home, userID := newService(t, &stubFetcher{preview: &previewPort.Preview{
			Title:       "A page",
			Description: "About things",
			Image:       "https://example.com/img.png",
		}})

		dto, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
			Title:     "Launch",
			EventDate: "2024-01-01",
			URL:       "https://example.com/page",
		}, home.ID.String(), userID)
		require.NoError(t, err)
		assert.Equal(t, "A page", dto.URLTitle)
		assert.Equal(t, "About things", dto.URLDescription)
		assert.Equal(t, "https://example.com/img.png", dto.URLImage)
	})

	t.Run("fetch failure never fails the event", func(t *testing.T) {
		svc, home, userID := newService(t, &stubFetcher{err: errors.New("timeout")})

		dto, err := svc.CreateEvent(context.Background(), eventPort.CreateEventInput{
			Title:     "Launch",
			EventDate: "2024-01-01",
			URL:       "https://example.com/page",
		}, home.ID.String(), userID)
		require.NoError(t, err)
		assert.Empty(t, dto.URLTitle)
	})
}
