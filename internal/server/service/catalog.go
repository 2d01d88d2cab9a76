package service

import (
	"context"
	"log/slog"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/storage"
	"github.com/iudanet/starmap/internal/validation"
)

// Catalog implements the resource catalog operations
type Catalog struct {
	logger    *slog.Logger
	resources storage.ResourceStorage
	journal
}

// NewCatalog создает сервис справочника ресурсов
func NewCatalog(logger *slog.Logger, resources storage.ResourceStorage, recorder audit.Recorder) *Catalog {
	return &Catalog{
		logger:    logger,
		resources: resources,
		journal:   journal{logger: logger, recorder: recorder},
	}
}

// List returns the catalog ordered by sort order, category and label
func (s *Catalog) List(ctx context.Context) ([]*models.Resource, error) {
	return s.resources.ListResources(ctx)
}

// Create добавляет ресурс; нулевой sort_order ставит его в конец списка
func (s *Catalog) Create(ctx context.Context, caller Caller, resource *models.Resource) (*models.Resource, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateResource(resource); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.resources.CreateResource(ctx, resource); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.ActionCreateResource, resource.ID, map[string]any{"label": resource.Label})

	return s.resources.GetResource(ctx, resource.ID)
}

// Update меняет label, category и color. Пустая категория сохраняет текущую.
func (s *Catalog) Update(ctx context.Context, caller Caller, resource *models.Resource) (*models.Resource, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateResourceUpdate(resource); err != nil {
		return nil, invalidInput(err)
	}

	current, err := s.resources.GetResource(ctx, resource.ID)
	if err != nil {
		return nil, err
	}
	if resource.Category == "" {
		resource.Category = current.Category
	}

	if err := s.resources.UpdateResource(ctx, resource); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.ActionUpdateResource, resource.ID, map[string]any{
		"label": resource.Label,
		"color": resource.Color,
	})

	return s.resources.GetResource(ctx, resource.ID)
}
