package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"
	"timelineforum/internal/adapters/httpapi/middleware"
	commentPort "timelineforum/internal/ports/comment"
	eventPort "timelineforum/internal/ports/event"
	postPort "timelineforum/internal/ports/post"
	timelinePort "timelineforum/internal/ports/timeline"
	userPort "timelineforum/internal/ports/user"
)

// Inbound ports: the slices of each use case the controllers need.

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error)
}

type TimelineUseCase interface {
	CreateTimeline(ctx context.Context, name, description, actingUserID string) (*timelinePort.TimelineDTO, error)
	GetTimeline(ctx context.Context, id string) (*timelinePort.TimelineDTO, error)
	ListTimelines(ctx context.Context) ([]*timelinePort.TimelineDTO, error)
	DeleteTimeline(ctx context.Context, id string) error
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, in eventPort.CreateEventInput, timelineID, actingUserID string) (*eventPort.EventDTO, error)
	EventsForTimeline(ctx context.Context, timelineID string) ([]*eventPort.EventDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, in postPort.CreatePostInput, timelineID, actingUserID string) (*postPort.PostDTO, error)
	ListByTimeline(ctx context.Context, timelineID string) ([]*postPort.PostDTO, error)
	Upvote(ctx context.Context, postID string) (int, error)
	SetSourceCount(ctx context.Context, postID string, count int) error
}

type PromotionUseCase interface {
	CheckPromotions(ctx context.Context, timelineID string, limit int) ([]string, error)
	VoteForPromotion(ctx context.Context, postID, userID string) (float64, error)
}

type CommentUseCase interface {
	AddToPost(ctx context.Context, postID, content, actingUserID string) (*commentPort.CommentDTO, error)
	AddToEvent(ctx context.Context, eventID, content, actingUserID string) (*commentPort.CommentDTO, error)
	ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error)
	ListByEvent(ctx context.Context, eventID string) ([]*commentPort.CommentDTO, error)
}

// SetupRoutes wires controllers onto the gin engine. Reads are public;
// mutations require a valid token.
func SetupRoutes(
	userUC UserUseCase,
	timelineUC TimelineUseCase,
	eventUC EventUseCase,
	postUC PostUseCase,
	promotionUC PromotionUseCase,
	commentUC CommentUseCase,
	jwtKey []byte,
) *gin.Engine {
	r := gin.Default()
	uc := NewUserController(userUC)
	tc := NewTimelineController(timelineUC)
	ec := NewEventController(eventUC)
	pc := NewPostController(postUC, promotionUC)
	cc := NewCommentController(commentUC)

	auth := middleware.JWTAuthMiddleware(jwtKey)

	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)

	api := r.Group("/api")

	api.POST("/timeline", auth, tc.CreateTimeline)
	api.GET("/timelines", tc.ListTimelines)
	api.GET("/timeline/:id", tc.GetTimeline)
	api.DELETE("/timeline/:id", auth, tc.DeleteTimeline)

	api.POST("/timeline/:id/event", auth, ec.CreateEvent)
	api.GET("/timeline/:id/events", ec.GetTimelineEvents)

	api.POST("/timeline/:id/post", auth, pc.CreatePost)
	api.GET("/timeline/:id/posts", pc.GetTimelinePosts)
	api.POST("/timeline/:id/check-promotions", auth, pc.CheckPromotions)

	api.POST("/post/:id/upvote", auth, pc.UpvotePost)
	api.PUT("/post/:id/sources", auth, pc.SetSourceCount)
	api.POST("/post/:id/promote", auth, pc.VoteForPromotion)

	api.POST("/post/:id/comment", auth, cc.AddPostComment)
	api.GET("/post/:id/comments", cc.GetPostComments)
	api.POST("/event/:id/comment", auth, cc.AddEventComment)
	api.GET("/event/:id/comments", cc.GetEventComments)

	return r
}
