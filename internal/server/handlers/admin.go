package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/pkg/api"
)

// AdminHandler обрабатывает административные запросы
type AdminHandler struct {
	base
	users *service.Users
	admin *service.Admin
}

// NewAdminHandler создает handler администрирования
func NewAdminHandler(logger *slog.Logger, users *service.Users, admin *service.Admin) *AdminHandler {
	return &AdminHandler{
		base:  base{logger: logger},
		users: users,
		admin: admin,
	}
}

// ListUsers обрабатывает GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	users, err := h.users.List(r.Context(), caller)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, toAPIUsers(users), http.StatusOK)
}

// CreateUser обрабатывает POST /api/admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.users.Create(r.Context(), caller, req.Username, req.Password, req.Role)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusCreated)
}

// ResetPassword обрабатывает PUT /api/admin/users/{id}/password
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.PasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.users.ResetPassword(r.Context(), caller, chi.URLParam(r, "id"), req.Password); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendOK(w)
}

// ChangeRole обрабатывает PUT /api/admin/users/{id}/role
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.RoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.users.ChangeRole(r.Context(), caller, chi.URLParam(r, "id"), req.Role); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendOK(w)
}

// DeleteUser обрабатывает DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendOK(w)
}

// Logs обрабатывает GET /api/admin/logs?limit=&offset=
// Некорректные значения параметров заменяются значениями по умолчанию
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	limit := queryInt(query.Get("limit"), audit.DefaultLimit)
	offset := queryInt(query.Get("offset"), 0)

	entries, total, err := h.admin.Logs(r.Context(), caller, limit, offset)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, api.LogsResponse{
		Logs:  toAPIAuditEntries(entries),
		Total: total,
	}, http.StatusOK)
}

// ResetMap обрабатывает POST /api/admin/reset/map
func (h *AdminHandler) ResetMap(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.admin.ResetMap)
}

// ResetPlayers обрабатывает POST /api/admin/reset/players
func (h *AdminHandler) ResetPlayers(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.admin.ResetPlayers)
}

// ResetLogs обрабатывает POST /api/admin/reset/logs
func (h *AdminHandler) ResetLogs(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.admin.ResetLogs)
}

// ResetAll обрабатывает POST /api/admin/reset/all
func (h *AdminHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.admin.ResetAll)
}

type resetFunc func(ctx context.Context, caller service.Caller) error

func (h *AdminHandler) reset(w http.ResponseWriter, r *http.Request, fn resetFunc) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := fn(r.Context(), caller); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendOK(w)
}

// queryInt разбирает целочисленный параметр запроса, fallback при ошибке
func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
