package event

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"timelineforum/internal/core/tag"
	"timelineforum/internal/core/timeline"
	"timelineforum/internal/core/user"
)

// DefaultType is assigned when a client omits the event type.
const DefaultType = "remark"

// Event is a canonical timeline entry. TimelineID is the home timeline that
// owns the event; ReferencedIn holds the additional timelines the event is
// visible in through its tags. The two relations are independent: visibility
// is never inferred from the home FK and vice versa.
type Event struct {
	ID             uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Title          string         `gorm:"type:varchar(200);not null"`
	Description    string         `gorm:"type:text"`
	EventDate      time.Time      `gorm:"not null;index"`
	Type           string         `gorm:"type:varchar(50);not null;default:remark"`
	URL            string         `gorm:"type:varchar(500)"`
	URLTitle       string         `gorm:"type:varchar(500)"`
	URLDescription string         `gorm:"type:text"`
	URLImage       string         `gorm:"type:varchar(500)"`
	MediaURL       string         `gorm:"type:varchar(500)"`
	MediaType      string         `gorm:"type:varchar(50)"`
	TimelineID     uuid.UUID      `gorm:"type:char(36);not null;index"`
	CreatedBy      uuid.UUID      `gorm:"type:char(36);not null"`
	Creator        user.User      `gorm:"foreignkey:CreatedBy"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Tags         []tag.Tag           `gorm:"many2many:event_tags"`
	ReferencedIn []timeline.Timeline `gorm:"many2many:event_timeline_refs"`
}
