package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/pkg/api"
)

// SessionCookieName имя cookie с токеном сессии
const SessionCookieName = "token"

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	base
	auth *service.Auth
	ttl  time.Duration
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth *service.Auth, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		base: base{logger: logger},
		auth: auth,
		ttl:  ttl,
	}
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password, ClientIP(r))
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	h.sendJSON(w, api.LoginResponse{
		Token: result.Token,
		User:  toAPIUser(result.User),
	}, http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout
// Отзывает текущий токен и очищает cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	claims, _ := GetClaims(r.Context())

	if err := h.auth.Logout(r.Context(), caller, claims); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	h.sendOK(w)
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	user, err := h.auth.Me(r.Context(), caller)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}

// UpdateMe обрабатывает PUT /api/auth/me
// Частичное обновление настроек интерфейса
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req api.UpdatePreferencesRequest
	if !h.decode(w, r, &req) {
		return
	}

	var patch models.PreferencesPatch
	if req.UITheme != nil {
		theme := models.Theme(*req.UITheme)
		patch.Theme = &theme
	}
	if req.UIShowBaseLabels != nil {
		show := bool(*req.UIShowBaseLabels)
		patch.ShowBaseLabels = &show
	}

	user, err := h.auth.UpdatePreferences(r.Context(), caller, patch)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}
