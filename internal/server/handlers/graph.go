package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/pkg/api"
)

// GraphHandler обрабатывает запросы к маркерам и модулям
type GraphHandler struct {
	base
	graph *service.Graph
}

// NewGraphHandler создает handler графа карты
func NewGraphHandler(logger *slog.Logger, graph *service.Graph) *GraphHandler {
	return &GraphHandler{
		base:  base{logger: logger},
		graph: graph,
	}
}

// ListMarkers обрабатывает GET /api/markers
func (h *GraphHandler) ListMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := h.graph.ListMarkers(r.Context())
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}
	h.sendJSON(w, markers, http.StatusOK)
}

// GetMarker обрабатывает GET /api/markers/{id}
func (h *GraphHandler) GetMarker(w http.ResponseWriter, r *http.Request) {
	marker, err := h.graph.GetMarker(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}
	h.sendJSON(w, marker, http.StatusOK)
}

// CreateMarker обрабатывает POST /api/markers
func (h *GraphHandler) CreateMarker(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.CreateMarkerRequest
	if !h.decode(w, r, &req) {
		return
	}

	marker, err := h.graph.CreateMarker(r.Context(), caller, service.MarkerInput{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		NX:          req.NX,
		NY:          req.NY,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, marker, http.StatusCreated)
}

// UpdateMarker обрабатывает PUT /api/markers/{id}
func (h *GraphHandler) UpdateMarker(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.UpdateMarkerRequest
	if !h.decode(w, r, &req) {
		return
	}

	marker, err := h.graph.UpdateMarker(r.Context(), caller, chi.URLParam(r, "id"), models.MarkerPatch{
		Name:        req.Name,
		Description: req.Description,
		NX:          req.NX,
		NY:          req.NY,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, marker, http.StatusOK)
}

// DeleteMarker обрабатывает DELETE /api/markers/{id}
// Модули базы удаляются вместе с маркером
func (h *GraphHandler) DeleteMarker(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	removed, err := h.graph.DeleteMarker(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, api.DeleteMarkerResponse{OK: true, RemovedModules: removed}, http.StatusOK)
}

// ListModules обрабатывает GET /api/modules?base_id=
func (h *GraphHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.graph.ListModules(r.Context(), r.URL.Query().Get("base_id"))
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}
	h.sendJSON(w, modules, http.StatusOK)
}

// GetModule обрабатывает GET /api/modules/{id}
func (h *GraphHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.graph.GetModule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}
	h.sendJSON(w, module, http.StatusOK)
}

// CreateModule обрабатывает POST /api/modules
func (h *GraphHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.CreateModuleRequest
	if !h.decode(w, r, &req) {
		return
	}

	module, err := h.graph.CreateModule(r.Context(), caller, service.ModuleInput{
		Kind:       req.Kind,
		Name:       req.Name,
		BaseID:     req.BaseID,
		ResourceID: req.ResourceID,
		Qty:        req.Qty,
		DestBaseID: req.DestBaseID,
		DestRecvID: req.DestRecvID,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, module, http.StatusCreated)
}

// UpdateModule обрабатывает PUT /api/modules/{id}
func (h *GraphHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.UpdateModuleRequest
	if !h.decode(w, r, &req) {
		return
	}

	module, err := h.graph.UpdateModule(r.Context(), caller, chi.URLParam(r, "id"), models.ModuleUpdate{
		Name:       req.Name,
		ResourceID: req.ResourceID,
		Qty:        req.Qty,
		DestBaseID: req.DestBaseID,
		DestRecvID: req.DestRecvID,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, module, http.StatusOK)
}

// DeleteModule обрабатывает DELETE /api/modules/{id}
func (h *GraphHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.graph.DeleteModule(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendOK(w)
}
