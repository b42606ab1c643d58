package apperr

import "errors"

// Sentinel errors shared by services and controllers. Services wrap these
// with fmt.Errorf("...: %w", ...) so the HTTP layer can map them to status
// codes without seeing store internals.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
