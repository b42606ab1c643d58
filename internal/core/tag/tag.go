package tag

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Tag names are stored lowercase; the companion timeline carries the
// capitalized display form. TimelineID stays nil until the tag is first used
// on an event, at which point the resolver creates the companion timeline and
// wires it back here.
type Tag struct {
	ID         uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Name       string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	TimelineID *uuid.UUID     `gorm:"type:char(36)"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
