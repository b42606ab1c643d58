package promotionapp

import (
	"context"
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
	postEntity "timelineforum/internal/core/post"
	timelineEntity "timelineforum/internal/core/timeline"
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
		&postEntity.Post{},
		&eventEntity.Event{},
	))
	config.DB = db
}

func newService(t *testing.T) (*PromotionService, *timelineEntity.Timeline) {
	t.Helper()
	setupDB(t)

	timelineRepo := dbadapter.NewTimelineRepositoryDatabase()
	svc := NewPromotionService(dbadapter.NewPromotionRepositoryDatabase(), timelineRepo, zap.NewNop())

	tl, err := timelineRepo.Create(context.Background(), &timelineEntity.Timeline{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "General",
		CreatedBy: uuid.Must(uuid.NewV4()),
	})
	require.NoError(t, err)
	return svc, tl
}

func seedPost(t *testing.T, timelineID uuid.UUID, votes, sources int, age time.Duration) *postEntity.Post {
	t.Helper()
	p := &postEntity.Post{
		ID:             uuid.Must(uuid.NewV4()),
		Title:          "A post",
		Content:        "Some content",
		EventDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TimelineID:     timelineID,
		CreatedBy:      uuid.Must(uuid.NewV4()),
		PromotionVotes: votes,
		SourceCount:    sources,
	}
	require.NoError(t, config.DB.Create(p).Error)
	// CreatedAt is set by autoCreateTime; rewind it to simulate age.
	createdAt := time.Now().Add(-age)
	require.NoError(t, config.DB.Model(p).Update("created_at", createdAt).Error)
	p.CreatedAt = createdAt
	return p
}

func TestCheckPromotionsPromotesAboveThreshold(t *testing.T) {
	svc, tl := newService(t)

	hot := seedPost(t, tl.ID, 10, 0, 0)            // score 7.0
	cold := seedPost(t, tl.ID, 4, 0, 72*time.Hour) // score 2.8

	promoted, err := svc.CheckPromotions(context.Background(), tl.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, promoted, 1)
	assert.Equal(t, hot.ID.String(), promoted[0])

	// The promoted post is flagged and an event was materialized with its
	// descriptive fields.
	var reloaded postEntity.Post
	require.NoError(t, config.DB.First(&reloaded, "id = ?", hot.ID).Error)
	assert.True(t, reloaded.PromotedToEvent)
	assert.InDelta(t, 7.0, reloaded.PromotionScore, 1e-9)
	assert.False(t, reloaded.LastScoreUpdate.IsZero())

	var ev eventEntity.Event
	require.NoError(t, config.DB.First(&ev, "timeline_id = ?", tl.ID).Error)
	assert.Equal(t, hot.Title, ev.Title)
	assert.Equal(t, hot.Content, ev.Description)
	assert.Equal(t, tl.ID, ev.TimelineID)
	assert.Equal(t, hot.CreatedBy, ev.CreatedBy)

	// The sub-threshold post still got its score refreshed.
	var coldReloaded postEntity.Post
	require.NoError(t, config.DB.First(&coldReloaded, "id = ?", cold.ID).Error)
	assert.False(t, coldReloaded.PromotedToEvent)
	assert.InDelta(t, 2.8, coldReloaded.PromotionScore, 1e-9)
}

// A second sweep without new engagement must not promote the same post again.
func TestCheckPromotionsIsIdempotent(t *testing.T) {
	svc, tl := newService(t)
	seedPost(t, tl.ID, 10, 0, 0)

	first, err := svc.CheckPromotions(context.Background(), tl.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.CheckPromotions(context.Background(), tl.ID.String(), 0)
	require.NoError(t, err)
	assert.Empty(t, second)

	var events int64
	require.NoError(t, config.DB.Model(&eventEntity.Event{}).Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestCheckPromotionsEmptyTimeline(t *testing.T) {
	svc, tl := newService(t)

	promoted, err := svc.CheckPromotions(context.Background(), tl.ID.String(), 0)
	require.NoError(t, err)
	assert.Empty(t, promoted)
}

func TestCheckPromotionsRespectsLimit(t *testing.T) {
	svc, tl := newService(t)
	for i := 0; i < 8; i++ {
		seedPost(t, tl.ID, 10, 0, 0)
	}

	promoted, err := svc.CheckPromotions(context.Background(), tl.ID.String(), 3)
	require.NoError(t, err)
	assert.Len(t, promoted, 3)
}

func TestCheckPromotionsUnknownTimeline(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CheckPromotions(context.Background(), uuid.Must(uuid.NewV4()).String(), 0)
	assert.True(t, apperr.IsNotFound(err))
}

func TestVoteForPromotion(t *testing.T) {
	svc, tl := newService(t)
	p := seedPost(t, tl.ID, 3, 0, 0)

	score, err := svc.VoteForPromotion(context.Background(), p.ID.String(), uuid.Must(uuid.NewV4()).String())
	require.NoError(t, err)
	assert.InDelta(t, 2.8, score, 1e-9) // 4 votes * 0.7

	var reloaded postEntity.Post
	require.NoError(t, config.DB.First(&reloaded, "id = ?", p.ID).Error)
	assert.Equal(t, 4, reloaded.PromotionVotes)
	assert.InDelta(t, 2.8, reloaded.PromotionScore, 1e-9)

	// Voting alone never promotes, even past the threshold.
	for i := 0; i < 10; i++ {
		_, err = svc.VoteForPromotion(context.Background(), p.ID.String(), uuid.Must(uuid.NewV4()).String())
		require.NoError(t, err)
	}
	require.NoError(t, config.DB.First(&reloaded, "id = ?", p.ID).Error)
	assert.False(t, reloaded.PromotedToEvent)
	assert.Greater(t, reloaded.PromotionScore, 5.0)
}

func TestVoteForPromotionUnknownPost(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.VoteForPromotion(context.Background(), uuid.Must(uuid.NewV4()).String(), "voter")
	assert.True(t, apperr.IsNotFound(err))
}
