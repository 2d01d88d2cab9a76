package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/storage"
	"github.com/iudanet/starmap/internal/validation"
)

var errNotDestReceiver = fmt.Errorf("not a receiver on the destination base: %w", storage.ErrInvalidReference)

// GraphStore is the persistence needed by Graph
type GraphStore interface {
	storage.MarkerStorage
	storage.ModuleStorage
	GetResource(ctx context.Context, id string) (*models.Resource, error)
}

// MarkerInput carries the fields of a new marker
type MarkerInput struct {
	NX          *float64
	NY          *float64
	Type        string
	Name        string
	Description string
}

// ModuleInput carries the fields of a new module
type ModuleInput struct {
	Qty        *int
	DestBaseID *string
	DestRecvID *string
	Kind       string
	Name       string
	BaseID     string
	ResourceID string
}

// Graph implements marker and module operations
type Graph struct {
	logger *slog.Logger
	store  GraphStore
	journal
}

// NewGraph создает сервис графа карты
func NewGraph(logger *slog.Logger, store GraphStore, recorder audit.Recorder) *Graph {
	return &Graph{
		logger:  logger,
		store:   store,
		journal: journal{logger: logger, recorder: recorder},
	}
}

// ListMarkers returns every marker ordered by creation time
func (s *Graph) ListMarkers(ctx context.Context) ([]*models.Marker, error) {
	return s.store.ListMarkers(ctx)
}

// GetMarker returns one marker
func (s *Graph) GetMarker(ctx context.Context, id string) (*models.Marker, error) {
	return s.store.GetMarker(ctx, id)
}

// CreateMarker создает маркер от имени вызывающего
func (s *Graph) CreateMarker(ctx context.Context, caller Caller, in MarkerInput) (*models.Marker, error) {
	if in.NX == nil || in.NY == nil {
		return nil, invalidInputf("nx and ny are required")
	}

	now := time.Now().UTC()
	marker := &models.Marker{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		NX:          *in.NX,
		NY:          *in.NY,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validation.ValidateMarker(marker); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.store.CreateMarker(ctx, marker); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.ActionCreateMarker, marker.ID, map[string]any{
		"type": marker.Type,
		"name": marker.Name,
	})

	return marker, nil
}

// UpdateMarker применяет частичное изменение; тип маркера не меняется
func (s *Graph) UpdateMarker(ctx context.Context, caller Caller, id string, patch models.MarkerPatch) (*models.Marker, error) {
	marker, err := s.store.UpdateMarker(ctx, id, func(m *models.Marker) error {
		patch.Apply(m)
		if err := validation.ValidateMarker(m); err != nil {
			return invalidInput(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.ActionUpdateMarker, marker.ID, map[string]any{"name": marker.Name})

	return marker, nil
}

// DeleteMarker удаляет маркер вместе с модулями базы; возвращает число удаленных модулей
func (s *Graph) DeleteMarker(ctx context.Context, caller Caller, id string) (int, error) {
	removed, err := s.store.DeleteMarker(ctx, id)
	if err != nil {
		return 0, err
	}

	s.record(ctx, caller, models.ActionDeleteMarker, id, map[string]any{"removed_modules": removed})

	s.logger.InfoContext(ctx, "marker deleted",
		slog.String("marker_id", id),
		slog.Int("removed_modules", removed))

	return removed, nil
}

// ListModules returns modules, optionally restricted to one base
func (s *Graph) ListModules(ctx context.Context, baseID string) ([]*models.Module, error) {
	return s.store.ListModules(ctx, baseID)
}

// GetModule returns one module
func (s *Graph) GetModule(ctx context.Context, id string) (*models.Module, error) {
	return s.store.GetModule(ctx, id)
}

// CreateModule создает модуль на базе. base_id обязан указывать на маркер типа base.
func (s *Graph) CreateModule(ctx context.Context, caller Caller, in ModuleInput) (*models.Module, error) {
	module := &models.Module{
		ID:         uuid.New().String(),
		Kind:       models.ModuleKind(in.Kind),
		Name:       in.Name,
		BaseID:     in.BaseID,
		ResourceID: in.ResourceID,
		Qty:        in.Qty,
		DestBaseID: in.DestBaseID,
		DestRecvID: in.DestRecvID,
		CreatedBy:  caller.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := validation.NormalizeModule(module); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.store.CreateModule(ctx, module); err != nil {
		return nil, err
	}

	s.checkLinks(ctx, module)

	s.record(ctx, caller, models.ActionCreateModule, module.ID, map[string]any{
		"kind":        module.Kind,
		"name":        module.Name,
		"resource_id": module.ResourceID,
	})

	return module, nil
}

// UpdateModule изменяет модуль; kind и base_id не меняются
func (s *Graph) UpdateModule(ctx context.Context, caller Caller, id string, update models.ModuleUpdate) (*models.Module, error) {
	module, err := s.store.UpdateModule(ctx, id, func(m *models.Module) error {
		update.Apply(m)
		if err := validation.NormalizeModule(m); err != nil {
			return invalidInput(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.checkLinks(ctx, module)

	s.record(ctx, caller, models.ActionUpdateModule, module.ID, map[string]any{"name": module.Name})

	return module, nil
}

// DeleteModule удаляет модуль
func (s *Graph) DeleteModule(ctx context.Context, caller Caller, id string) error {
	if err := s.store.DeleteModule(ctx, id); err != nil {
		return err
	}

	s.record(ctx, caller, models.ActionDeleteModule, id, nil)
	return nil
}

// checkLinks проверяет рекомендательные ссылки модуля.
// Висячие ссылки допустимы и только логируются.
func (s *Graph) checkLinks(ctx context.Context, m *models.Module) {
	if _, err := s.store.GetResource(ctx, m.ResourceID); err != nil {
		s.warnLink(ctx, m, "resource_id", m.ResourceID, err)
	}

	if m.DestBaseID != nil {
		dest, err := s.store.GetMarker(ctx, *m.DestBaseID)
		switch {
		case err != nil:
			s.warnLink(ctx, m, "dest_base_id", *m.DestBaseID, err)
		case !dest.IsBase():
			s.warnLink(ctx, m, "dest_base_id", *m.DestBaseID, storage.ErrBaseNotFound)
		}
	}

	if m.DestRecvID != nil {
		recv, err := s.store.GetModule(ctx, *m.DestRecvID)
		switch {
		case err != nil:
			s.warnLink(ctx, m, "dest_recv_id", *m.DestRecvID, err)
		case recv.Kind != models.ModuleRecv || m.DestBaseID == nil || recv.BaseID != *m.DestBaseID:
			s.warnLink(ctx, m, "dest_recv_id", *m.DestRecvID, errNotDestReceiver)
		}
	}
}

func (s *Graph) warnLink(ctx context.Context, m *models.Module, field, value string, err error) {
	// Сбой хранилища важнее висячей ссылки
	level := slog.LevelError
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidReference) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "module references a missing entity",
		slog.String("module_id", m.ID),
		slog.String("field", field),
		slog.String("value", value),
		slog.Any("error", err))
}
