package tagapp

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"timelineforum/internal/core/apperr"
	tagEntity "timelineforum/internal/core/tag"
	timelineEntity "timelineforum/internal/core/timeline"
	tagPort "timelineforum/internal/ports/tag"
	timelinePort "timelineforum/internal/ports/timeline"
)

type TagService struct {
	TagRepository      tagPort.TagRepository
	TimelineRepository timelinePort.TimelineRepository
	Logger             *zap.Logger
}

func NewTagService(
	tagRepo tagPort.TagRepository,
	timelineRepo timelinePort.TimelineRepository,
	logger *zap.Logger,
) *TagService {
	return &TagService{
		TagRepository:      tagRepo,
		TimelineRepository: timelineRepo,
		Logger:             logger,
	}
}

// Normalize produces the storage form of a raw tag: trimmed and lowercased.
// Returns "" for entries that are empty after trimming; the resolver drops
// those silently.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// DisplayName derives the companion timeline name from a normalized tag:
// first letter upper, rest unchanged (the input is already lowercase).
func DisplayName(normalized string) string {
	r := []rune(normalized)
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Resolve finds or creates a tag plus its companion timeline for every usable
// raw name. Duplicate entries in the input collapse to one result. A creation
// race on either row is resolved by re-reading the winner, never by failing
// the request.
func (s *TagService) Resolve(ctx context.Context, rawNames []string, actingUserID string) ([]*tagPort.ResolvedTag, error) {
	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid acting user id", apperr.ErrValidation)
	}

	seen := make(map[string]bool)
	resolved := make([]*tagPort.ResolvedTag, 0, len(rawNames))
	for _, raw := range rawNames {
		name := Normalize(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		rt, err := s.resolveOne(ctx, name, uid)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rt)
	}
	return resolved, nil
}

func (s *TagService) resolveOne(ctx context.Context, name string, actingUser uuid.UUID) (*tagPort.ResolvedTag, error) {
	t, created, err := s.findOrCreateTag(ctx, name)
	if err != nil {
		return nil, err
	}

	tl, err := s.ensureCompanionTimeline(ctx, t, actingUser)
	if err != nil {
		return nil, err
	}

	return &tagPort.ResolvedTag{Tag: t, Timeline: tl, Created: created}, nil
}

func (s *TagService) findOrCreateTag(ctx context.Context, name string) (*tagEntity.Tag, bool, error) {
	t, err := s.TagRepository.FindByName(ctx, name)
	if err == nil {
		return t, false, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, false, err
	}

	t = &tagEntity.Tag{
		ID:   uuid.Must(uuid.NewV4()),
		Name: name,
	}
	createdTag, err := s.TagRepository.Create(ctx, t)
	if err == nil {
		return createdTag, true, nil
	}
	if !apperr.IsConflict(err) {
		return nil, false, err
	}

	// Lost the creation race: another request inserted the same name between
	// our lookup and insert. Reuse the winner's row.
	s.Logger.Info("tag creation race, reusing existing tag", zap.String("name", name))
	t, err = s.TagRepository.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}

// ensureCompanionTimeline loads the tag's companion timeline, creating and
// wiring one when the tag has none yet. The timeline row is persisted before
// the tag link so the id always exists when referenced.
func (s *TagService) ensureCompanionTimeline(ctx context.Context, t *tagEntity.Tag, actingUser uuid.UUID) (*timelineEntity.Timeline, error) {
	if t.TimelineID != nil {
		tl, err := s.TimelineRepository.FindByID(ctx, t.TimelineID.String())
		if err == nil {
			return tl, nil
		}
		if !apperr.IsNotFound(err) {
			return nil, err
		}
		// Dangling reference from older data; fall through and rebuild it.
		s.Logger.Warn("tag points at missing timeline, recreating",
			zap.String("tag", t.Name), zap.String("timeline_id", t.TimelineID.String()))
	}

	display := DisplayName(t.Name)
	tl, err := s.TimelineRepository.FindByName(ctx, display)
	if apperr.IsNotFound(err) {
		tl, err = s.createCompanionTimeline(ctx, display, actingUser)
	}
	if err != nil {
		return nil, err
	}

	if err := s.TagRepository.SetTimeline(ctx, t.ID.String(), tl.ID.String()); err != nil {
		return nil, err
	}
	t.TimelineID = &tl.ID
	return tl, nil
}

func (s *TagService) createCompanionTimeline(ctx context.Context, display string, actingUser uuid.UUID) (*timelineEntity.Timeline, error) {
	tl := &timelineEntity.Timeline{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        display,
		Description: fmt.Sprintf("Timeline for %s", display),
		CreatedBy:   actingUser,
	}
	created, err := s.TimelineRepository.Create(ctx, tl)
	if err == nil {
		s.Logger.Info("created companion timeline", zap.String("name", display))
		return created, nil
	}
	if !apperr.IsConflict(err) {
		return nil, err
	}

	// Same race as tags: fall back to the row that won.
	return s.TimelineRepository.FindByName(ctx, display)
}
