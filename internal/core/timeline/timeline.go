package timeline

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"timelineforum/internal/core/user"
)

// GeneralName is the reserved fallback timeline. It is seeded at startup and
// can never be deleted.
const GeneralName = "General"

type Timeline struct {
	ID          uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	CreatedBy   uuid.UUID      `gorm:"type:char(36);not null"`
	Creator     user.User      `gorm:"foreignkey:CreatedBy"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
