package storage

import (
	"context"

	"github.com/iudanet/starmap/internal/models"
)

// ResourceStorage defines interface for the resource catalog
type ResourceStorage interface {
	// ListResources returns the catalog ordered by sort order, category and label
	ListResources(ctx context.Context) ([]*models.Resource, error)

	// GetResource retrieves a catalog entry by ID
	// Returns ErrResourceNotFound if it doesn't exist
	GetResource(ctx context.Context, id string) (*models.Resource, error)

	// CreateResource inserts a catalog entry. A zero SortOrder is replaced
	// with the current maximum plus SortOrderStep
	// Returns ErrResourceAlreadyExists on duplicate ID
	CreateResource(ctx context.Context, resource *models.Resource) error

	// UpdateResource replaces label, category and color of an entry
	// Returns ErrResourceNotFound if it doesn't exist
	UpdateResource(ctx context.Context, resource *models.Resource) error

	// CountResources returns the number of catalog entries
	CountResources(ctx context.Context) (int, error)

	// SeedResources inserts the given entries in one transaction
	SeedResources(ctx context.Context, resources []models.Resource) error
}

// SortOrderStep gap left between automatically assigned sort positions
const SortOrderStep = 10
