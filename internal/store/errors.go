package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by every store implementation. Handlers map these
// to HTTP statuses; callers test with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient quantity")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadySigned      = errors.New("entry already signed")
	ErrInvalidStatus      = errors.New("invalid status transition")
	ErrDuplicate          = errors.New("already exists")
)

// NotFound wraps ErrNotFound with the entity name for diagnostics.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}
