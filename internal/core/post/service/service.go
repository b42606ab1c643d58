package postapp

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"timelineforum/internal/core/apperr"
	postEntity "timelineforum/internal/core/post"
	postPort "timelineforum/internal/ports/post"
	previewPort "timelineforum/internal/ports/preview"
	timelinePort "timelineforum/internal/ports/timeline"
)

type PostService struct {
	PostRepository     postPort.PostRepository
	TimelineRepository timelinePort.TimelineRepository
	PreviewFetcher     previewPort.Fetcher
	PreviewCache       previewPort.Cache
	Logger             *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	timelineRepo timelinePort.TimelineRepository,
	fetcher previewPort.Fetcher,
	cache previewPort.Cache,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:     postRepo,
		TimelineRepository: timelineRepo,
		PreviewFetcher:     fetcher,
		PreviewCache:       cache,
		Logger:             logger,
	}
}

var acceptedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreatePost stores a new engagement post in the timeline.
func (s *PostService) CreatePost(ctx context.Context, in postPort.CreatePostInput, timelineID, actingUserID string) (*postPort.PostDTO, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}
	var eventDate time.Time
	var err error
	for _, layout := range acceptedDateLayouts {
		if eventDate, err = time.Parse(layout, in.EventDate); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable event_date %q", apperr.ErrValidation, in.EventDate)
	}

	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid acting user id", apperr.ErrValidation)
	}

	home, err := s.TimelineRepository.FindByID(ctx, timelineID)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		ID:              uuid.Must(uuid.NewV4()),
		Title:           in.Title,
		Content:         in.Content,
		EventDate:       eventDate,
		URL:             in.URL,
		MediaURL:        in.MediaURL,
		MediaType:       in.MediaType,
		TimelineID:      home.ID,
		CreatedBy:       uid,
		LastScoreUpdate: time.Now(),
	}
	s.attachPreview(ctx, p)

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("post created",
		zap.String("post_id", created.ID.String()),
		zap.String("timeline_id", home.ID.String()))
	return ToDTO(created), nil
}

// ListByTimeline returns the timeline's posts ordered by promotion score.
func (s *PostService) ListByTimeline(ctx context.Context, timelineID string) ([]*postPort.PostDTO, error) {
	if _, err := s.TimelineRepository.FindByID(ctx, timelineID); err != nil {
		return nil, err
	}
	posts, err := s.PostRepository.ListByTimeline(ctx, timelineID)
	if err != nil {
		return nil, err
	}
	out := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToDTO(p))
	}
	return out, nil
}

// Upvote bumps the post's upvote counter and returns the new total.
func (s *PostService) Upvote(ctx context.Context, postID string) (int, error) {
	return s.PostRepository.Upvote(ctx, postID)
}

// SetSourceCount records the number of external citations for a post.
func (s *PostService) SetSourceCount(ctx context.Context, postID string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: source_count must not be negative", apperr.ErrValidation)
	}
	return s.PostRepository.SetSourceCount(ctx, postID, count)
}

func (s *PostService) attachPreview(ctx context.Context, p *postEntity.Post) {
	if p.URL == "" || s.PreviewFetcher == nil {
		return
	}

	if s.PreviewCache != nil {
		if cached, err := s.PreviewCache.Get(ctx, p.URL); err == nil && cached != nil {
			p.URLTitle, p.URLDescription, p.URLImage = cached.Title, cached.Description, cached.Image
			return
		}
	}

	fetched, err := s.PreviewFetcher.Fetch(ctx, p.URL)
	if err != nil || fetched == nil {
		if err != nil {
			s.Logger.Warn("link preview fetch failed", zap.String("url", p.URL), zap.Error(err))
		}
		return
	}
	p.URLTitle, p.URLDescription, p.URLImage = fetched.Title, fetched.Description, fetched.Image

	if s.PreviewCache != nil {
		if err := s.PreviewCache.Set(ctx, p.URL, fetched); err != nil {
			s.Logger.Warn("link preview cache write failed", zap.String("url", p.URL), zap.Error(err))
		}
	}
}

// ToDTO converts a post entity to its wire shape.
func ToDTO(p *postEntity.Post) *postPort.PostDTO {
	return &postPort.PostDTO{
		ID:              p.ID.String(),
		Title:           p.Title,
		Content:         p.Content,
		EventDate:       p.EventDate.Format(time.RFC3339),
		URL:             p.URL,
		TimelineID:      p.TimelineID.String(),
		CreatedBy:       p.CreatedBy.String(),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		Upvotes:         p.Upvotes,
		PromotedToEvent: p.PromotedToEvent,
		PromotionScore:  p.PromotionScore,
		SourceCount:     p.SourceCount,
		PromotionVotes:  p.PromotionVotes,
	}
}
