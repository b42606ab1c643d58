package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"timelineforum/internal/core/apperr"
)

// translate maps GORM errors onto the core taxonomy so services and
// controllers never see store internals.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	default:
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
}
