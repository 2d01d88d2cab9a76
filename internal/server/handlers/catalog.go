package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/pkg/api"
)

// CatalogHandler обрабатывает запросы к справочнику ресурсов
type CatalogHandler struct {
	base
	catalog *service.Catalog
}

// NewCatalogHandler создает handler справочника ресурсов
func NewCatalogHandler(logger *slog.Logger, catalog *service.Catalog) *CatalogHandler {
	return &CatalogHandler{
		base:    base{logger: logger},
		catalog: catalog,
	}
}

// List обрабатывает GET /api/resources и GET /api/admin/resources
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.catalog.List(r.Context())
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}
	h.sendJSON(w, resources, http.StatusOK)
}

// Create обрабатывает POST /api/admin/resources
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.ResourceRequest
	if !h.decode(w, r, &req) {
		return
	}

	resource, err := h.catalog.Create(r.Context(), caller, &models.Resource{
		ID:        req.ID,
		Label:     req.Label,
		Category:  req.Category,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, resource, http.StatusCreated)
}

// Update обрабатывает PUT /api/admin/resources/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.ResourceRequest
	if !h.decode(w, r, &req) {
		return
	}

	// ID из пути имеет приоритет над телом запроса
	resource, err := h.catalog.Update(r.Context(), caller, &models.Resource{
		ID:       chi.URLParam(r, "id"),
		Label:    req.Label,
		Category: req.Category,
		Color:    req.Color,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, resource, http.StatusOK)
}
