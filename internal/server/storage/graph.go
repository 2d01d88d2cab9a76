package storage

import (
	"context"

	"github.com/iudanet/starmap/internal/models"
)

// MarkerStorage defines interface for map marker persistence
type MarkerStorage interface {
	// CreateMarker inserts a new marker
	CreateMarker(ctx context.Context, marker *models.Marker) error

	// GetMarker retrieves marker by ID
	// Returns ErrMarkerNotFound if marker doesn't exist
	GetMarker(ctx context.Context, id string) (*models.Marker, error)

	// ListMarkers returns all markers ordered by creation time
	ListMarkers(ctx context.Context) ([]*models.Marker, error)

	// UpdateMarker reads the marker, passes it to mutate and writes the result
	// back inside one transaction. Returns ErrMarkerNotFound if marker doesn't exist
	UpdateMarker(ctx context.Context, id string, mutate func(*models.Marker) error) (*models.Marker, error)

	// DeleteMarker removes the marker together with every module based on it.
	// Both deletions happen in one transaction. Returns the number of removed modules
	// Returns ErrMarkerNotFound if marker doesn't exist
	DeleteMarker(ctx context.Context, id string) (int, error)
}

// ModuleStorage defines interface for module (resource-flow edge) persistence
type ModuleStorage interface {
	// CreateModule inserts a module after checking that BaseID names a base marker
	// Returns ErrBaseNotFound if it does not, ErrInvalidModuleKind for unknown kinds
	CreateModule(ctx context.Context, module *models.Module) error

	// GetModule retrieves module by ID
	// Returns ErrModuleNotFound if module doesn't exist
	GetModule(ctx context.Context, id string) (*models.Module, error)

	// ListModules returns modules ordered by creation time.
	// A non-empty baseID restricts the list to that base
	ListModules(ctx context.Context, baseID string) ([]*models.Module, error)

	// CountModules returns the number of stored modules
	CountModules(ctx context.Context) (int, error)

	// UpdateModule reads the module, passes it to mutate and writes the result
	// back inside one transaction. Returns ErrModuleNotFound if module doesn't exist
	UpdateModule(ctx context.Context, id string, mutate func(*models.Module) error) (*models.Module, error)

	// DeleteModule deletes module by ID
	// Returns ErrModuleNotFound if module doesn't exist
	DeleteModule(ctx context.Context, id string) error
}
