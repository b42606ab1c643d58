package commentapp

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
	commentEntity "timelineforum/internal/core/comment"
	eventEntity "timelineforum/internal/core/event"
	postEntity "timelineforum/internal/core/post"
	tagEntity "timelineforum/internal/core/tag"
	timelineEntity "timelineforum/internal/core/timeline"
)

func newService(t *testing.T) (*CommentService, *postEntity.Post, *eventEntity.Event) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&timelineEntity.Timeline{},
		&tagEntity.Tag{},
		&postEntity.Post{},
		&eventEntity.Event{},
		&commentEntity.Comment{},
	))
	config.DB = db

	svc := NewCommentService(
		dbadapter.NewCommentRepositoryDatabase(),
		dbadapter.NewPostRepositoryDatabase(),
		dbadapter.NewEventRepositoryDatabase(),
		zap.NewNop(),
	)

	userID := uuid.Must(uuid.NewV4())
	tl := &timelineEntity.Timeline{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "General",
		CreatedBy: userID,
	}
	require.NoError(t, db.Create(tl).Error)

	p := &postEntity.Post{
		ID:         uuid.Must(uuid.NewV4()),
		Title:      "A post",
		Content:    "content",
		EventDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TimelineID: tl.ID,
		CreatedBy:  userID,
	}
	require.NoError(t, db.Create(p).Error)

	ev := &eventEntity.Event{
		ID:         uuid.Must(uuid.NewV4()),
		Title:      "An event",
		EventDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:       eventEntity.DefaultType,
		TimelineID: tl.ID,
		CreatedBy:  userID,
	}
	require.NoError(t, db.Create(ev).Error)

	return svc, p, ev
}

func actingUserID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func TestAddToPostAndList(t *testing.T) {
	svc, p, _ := newService(t)
	userID := actingUserID()

	dto, err := svc.AddToPost(context.Background(), p.ID.String(), "nice find", userID)
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), dto.PostID)
	assert.Empty(t, dto.EventID)
	assert.Equal(t, userID, dto.UserID)

	comments, err := svc.ListByPost(context.Background(), p.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice find", comments[0].Content)
}

func TestAddToEventAndList(t *testing.T) {
	svc, _, ev := newService(t)

	dto, err := svc.AddToEvent(context.Background(), ev.ID.String(), "context please", actingUserID())
	require.NoError(t, err)
	assert.Equal(t, ev.ID.String(), dto.EventID)
	assert.Empty(t, dto.PostID)

	comments, err := svc.ListByEvent(context.Background(), ev.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 1)
}

// A well-formed id that matches no row must come back not found, and no
// orphan comment row may be written.
func TestAddToUnknownParent(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.AddToPost(context.Background(), uuid.Must(uuid.NewV4()).String(), "hello", actingUserID())
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.AddToEvent(context.Background(), uuid.Must(uuid.NewV4()).String(), "hello", actingUserID())
	assert.True(t, apperr.IsNotFound(err))

	var count int64
	require.NoError(t, config.DB.Model(&commentEntity.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddValidation(t *testing.T) {
	svc, p, _ := newService(t)

	_, err := svc.AddToPost(context.Background(), "not-a-uuid", "hello", actingUserID())
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddToEvent(context.Background(), "not-a-uuid", "hello", actingUserID())
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddToPost(context.Background(), p.ID.String(), "", actingUserID())
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddToPost(context.Background(), p.ID.String(), "hello", "not-a-uuid")
	assert.True(t, apperr.IsValidation(err))
}

func TestListUnknownParent(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.ListByPost(context.Background(), uuid.Must(uuid.NewV4()).String())
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.ListByEvent(context.Background(), uuid.Must(uuid.NewV4()).String())
	assert.True(t, apperr.IsNotFound(err))
}
