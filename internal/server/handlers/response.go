package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/internal/server/storage"
	"github.com/iudanet/starmap/pkg/api"
)

// Теги видов ошибок в поле "error" ответа
const (
	KindUnauthenticated  = "unauthenticated"
	KindForbidden        = "forbidden"
	KindNotFound         = "not_found"
	KindInvalidInput     = "invalid_input"
	KindInvalidReference = "invalid_reference"
	KindConflict         = "conflict"
	KindInternal         = "internal"
)

// maxBodyBytes ограничение размера тела JSON запроса
const maxBodyBytes = 1 << 20

// SendJSON отправляет JSON ответ
func SendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError отправляет JSON ответ с ошибкой
func SendError(logger *slog.Logger, w http.ResponseWriter, kind, message string, statusCode int) {
	SendJSON(logger, w, api.ErrorResponse{Error: kind, Message: message}, statusCode)
}

// classify maps an error to its HTTP status and kind tag
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, KindUnauthenticated
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, storage.ErrInvalidInput):
		return http.StatusBadRequest, KindInvalidInput
	case errors.Is(err, storage.ErrInvalidReference):
		return http.StatusBadRequest, KindInvalidReference
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict, KindConflict
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

// base общие зависимости обработчиков
type base struct {
	logger *slog.Logger
}

func (h base) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	SendJSON(h.logger, w, data, statusCode)
}

func (h base) sendOK(w http.ResponseWriter) {
	h.sendJSON(w, api.OKResponse{OK: true}, http.StatusOK)
}

// sendServiceError отправляет ошибку сервиса; детали внутренних ошибок не раскрываются
func (h base) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		message = "internal server error"
	}
	SendError(h.logger, w, kind, message, status)
}

// decode разбирает JSON тело запроса; при ошибке сам отправляет ответ 400
func (h base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body", slog.Any("error", err))
		SendError(h.logger, w, KindInvalidInput, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// caller возвращает принципала запроса; без claims отвечает 401
func (h base) caller(w http.ResponseWriter, r *http.Request) (service.Caller, bool) {
	caller, ok := callerFrom(r)
	if !ok {
		SendError(h.logger, w, KindUnauthenticated, "authentication required", http.StatusUnauthorized)
	}
	return caller, ok
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:               u.ID,
		Username:         u.Username,
		Role:             string(u.Role),
		UITheme:          string(u.Preferences.Theme),
		UIShowBaseLabels: api.FlexBool(u.Preferences.ShowBaseLabels),
		CreatedAt:        u.CreatedAt,
		LastLogin:        u.LastLogin,
	}
}

func toAPIUsers(users []*models.User) []api.User {
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	return out
}

func toAPIAuditEntries(entries []*models.AuditEntry) []api.AuditEntry {
	out := make([]api.AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.AuditEntry{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  e.Username,
			Action:    string(e.Action),
			Target:    e.Target,
			Detail:    e.Detail,
			IP:        e.IP,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
