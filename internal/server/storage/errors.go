package storage

import (
	"errors"
	"fmt"
)

// Error kinds. Every storage error that is not an infrastructure failure
// wraps exactly one of them, so callers can classify with errors.Is.
var (
	// ErrNotFound indicates that the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates that a write carries malformed or missing fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidReference indicates that a referenced entity is absent
	ErrInvalidReference = errors.New("invalid reference")
)

// Entity-specific errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = fmt.Errorf("username already taken: %w", ErrConflict)

	// ErrMarkerNotFound indicates that marker was not found
	ErrMarkerNotFound = fmt.Errorf("marker %w", ErrNotFound)

	// ErrModuleNotFound indicates that module was not found
	ErrModuleNotFound = fmt.Errorf("module %w", ErrNotFound)

	// ErrInvalidModuleKind indicates a module kind other than send or recv
	ErrInvalidModuleKind = fmt.Errorf("module kind must be send or recv: %w", ErrInvalidInput)

	// ErrBaseNotFound indicates that module base_id does not name a marker of type base
	ErrBaseNotFound = fmt.Errorf("base not found: %w", ErrInvalidReference)

	// ErrResourceNotFound indicates that resource was not found in the catalog
	ErrResourceNotFound = fmt.Errorf("resource %w", ErrNotFound)

	// ErrResourceAlreadyExists indicates a duplicate catalog id
	ErrResourceAlreadyExists = fmt.Errorf("resource id already exists: %w", ErrConflict)
)
