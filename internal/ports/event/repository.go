package event

import (
	"context"

	"timelineforum/internal/core/event"
	tagPort "timelineforum/internal/ports/tag"
)

type EventRepository interface {
	// Create persists the event together with its tag links and timeline
	// references in a single transaction: a failure on any row leaves no
	// trace of the event behind.
	Create(ctx context.Context, ev *event.Event, tagIDs, refTimelineIDs []string) (*event.Event, error)
	FindByID(ctx context.Context, id string) (*event.Event, error)
	// ListForTimeline returns the union of events homed in the timeline and
	// events referencing it, deduplicated, ordered by event_date then id.
	ListForTimeline(ctx context.Context, timelineID string) ([]*event.Event, error)
}

// CreateEventInput carries the client-supplied fields for a new event.
// Title and EventDate are required; Type defaults to event.DefaultType; the
// remaining fields are optional and empty means absent.
type CreateEventInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EventDate   string   `json:"event_date"`
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	MediaURL    string   `json:"media_url"`
	MediaType   string   `json:"media_type"`
	Tags        []string `json:"tags"`
}

type EventDTO struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	EventDate      string           `json:"event_date"`
	Type           string           `json:"type"`
	URL            string           `json:"url,omitempty"`
	URLTitle       string           `json:"url_title,omitempty"`
	URLDescription string           `json:"url_description,omitempty"`
	URLImage       string           `json:"url_image,omitempty"`
	MediaURL       string           `json:"media_url,omitempty"`
	MediaType      string           `json:"media_type,omitempty"`
	TimelineID     string           `json:"timeline_id"`
	CreatedBy      string           `json:"created_by"`
	CreatedAt      string           `json:"created_at"`
	Tags           []tagPort.TagDTO `json:"tags"`
}
