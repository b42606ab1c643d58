package post

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"timelineforum/internal/core/user"
)

// Post is the pre-promotion engagement unit. Engagement counters feed the
// promotion score; once PromotedToEvent is set the post is never promoted
// again.
type Post struct {
	ID              uuid.UUID `gorm:"primary_key;type:char(36)"`
	Title           string    `gorm:"type:varchar(200);not null"`
	Content         string    `gorm:"type:text;not null"`
	EventDate       time.Time `gorm:"not null"`
	URL             string    `gorm:"type:varchar(500)"`
	URLTitle        string    `gorm:"type:varchar(500)"`
	URLDescription  string    `gorm:"type:text"`
	URLImage        string    `gorm:"type:varchar(500)"`
	MediaURL        string    `gorm:"type:varchar(500)"`
	MediaType       string    `gorm:"type:varchar(50)"`
	TimelineID      uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedBy       uuid.UUID `gorm:"type:char(36);not null"`
	Creator         user.User `gorm:"foreignkey:CreatedBy"`
	Upvotes         int       `gorm:"not null;default:0"`
	PromotedToEvent bool      `gorm:"not null;default:false;index"`
	PromotionScore  float64   `gorm:"not null;default:0"`
	SourceCount     int       `gorm:"not null;default:0"`
	PromotionVotes  int       `gorm:"not null;default:0"`
	LastScoreUpdate time.Time
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
