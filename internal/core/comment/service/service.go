package commentapp

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"timelineforum/internal/core/apperr"
	commentEntity "timelineforum/internal/core/comment"
	commentPort "timelineforum/internal/ports/comment"
	eventPort "timelineforum/internal/ports/event"
	postPort "timelineforum/internal/ports/post"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	EventRepository   eventPort.EventRepository
	Logger            *zap.Logger
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	eventRepo eventPort.EventRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		EventRepository:   eventRepo,
		Logger:            logger,
	}
}

// AddToPost attaches a comment to a post. An unknown post id is not found,
// never a silently orphaned comment.
func (s *CommentService) AddToPost(ctx context.Context, postID, content, actingUserID string) (*commentPort.CommentDTO, error) {
	pid, err := uuid.FromString(postID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid post id", apperr.ErrValidation)
	}
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.add(ctx, &pid, nil, content, actingUserID)
}

// AddToEvent attaches a comment to an event.
func (s *CommentService) AddToEvent(ctx context.Context, eventID, content, actingUserID string) (*commentPort.CommentDTO, error) {
	eid, err := uuid.FromString(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event id", apperr.ErrValidation)
	}
	if _, err := s.EventRepository.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.add(ctx, nil, &eid, content, actingUserID)
}

func (s *CommentService) add(ctx context.Context, postID, eventID *uuid.UUID, content, actingUserID string) (*commentPort.CommentDTO, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}
	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid acting user id", apperr.ErrValidation)
	}

	c := &commentEntity.Comment{
		ID:      uuid.Must(uuid.NewV4()),
		Content: content,
		PostID:  postID,
		EventID: eventID,
		UserID:  uid,
	}
	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return toDTO(created), nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toDTOs(comments), nil
}

func (s *CommentService) ListByEvent(ctx context.Context, eventID string) ([]*commentPort.CommentDTO, error) {
	if _, err := s.EventRepository.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toDTOs(comments), nil
}

func toDTOs(comments []*commentEntity.Comment) []*commentPort.CommentDTO {
	out := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toDTO(c))
	}
	return out
}

func toDTO(c *commentEntity.Comment) *commentPort.CommentDTO {
	dto := &commentPort.CommentDTO{
		ID:        c.ID.String(),
		Content:   c.Content,
		UserID:    c.UserID.String(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.PostID != nil {
		dto.PostID = c.PostID.String()
	}
	if c.EventID != nil {
		dto.EventID = c.EventID.String()
	}
	return dto
}
