package comment

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"timelineforum/internal/core/user"
)

// Comment belongs to exactly one of a post or an event.
type Comment struct {
	ID        uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Content   string         `gorm:"type:text;not null"`
	PostID    *uuid.UUID     `gorm:"type:char(36);index"`
	EventID   *uuid.UUID     `gorm:"type:char(36);index"`
	UserID    uuid.UUID      `gorm:"type:char(36);not null"`
	User      user.User      `gorm:"foreignkey:UserID"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
