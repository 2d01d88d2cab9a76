package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/iudanet/starmap/internal/server/handlers"
	"github.com/iudanet/starmap/internal/server/session"
)

// Verifier проверяет токен сессии
type Verifier interface {
	Verify(ctx context.Context, token string) (*session.Claims, error)
}

// APIAuth проверяет токен для API маршрутов.
// Токен берется из cookie, затем из заголовка Authorization: Bearer.
// Ошибки возвращаются как JSON 401.
func APIAuth(logger *slog.Logger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				handlers.SendError(logger, w, handlers.KindUnauthenticated,
					"authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logVerifyError(r.Context(), logger, r, err)
				handlers.SendError(logger, w, handlers.KindUnauthenticated,
					"session invalid or expired", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin пропускает только администраторов; ставится после APIAuth
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.GetClaims(r.Context())
			if !ok {
				handlers.SendError(logger, w, handlers.KindUnauthenticated,
					"authentication required", http.StatusUnauthorized)
				return
			}
			if !claims.IsAdmin() {
				logger.WarnContext(r.Context(), "admin access denied",
					slog.String("user", claims.Username),
					slog.String("path", r.URL.Path))
				handlers.SendError(logger, w, handlers.KindForbidden,
					"admin role required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PageAuth проверяет cookie сессии для страниц.
// При ошибке перенаправляет на /login с исходным путем в параметре next.
func PageAuth(logger *slog.Logger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Страницы принимают токен только из cookie
			token := cookieToken(r)
			if token == "" {
				redirectToLogin(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logVerifyError(r.Context(), logger, r, err)
				redirectToLogin(w, r)
				return
			}

			handlers.NoCache(w)
			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

// PageAdmin перенаправляет не-администраторов на главную страницу с err=forbidden.
// Ставится после PageAuth.
func PageAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.GetClaims(r.Context())
			if !ok {
				redirectToLogin(w, r)
				return
			}
			if !claims.IsAdmin() {
				logger.WarnContext(r.Context(), "admin page denied",
					slog.String("user", claims.Username),
					slog.String("path", r.URL.Path))
				handlers.NoCache(w)
				http.Redirect(w, r, "/?err=forbidden", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	handlers.NoCache(w)
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
}

func cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(handlers.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func extractToken(r *http.Request) string {
	if token := cookieToken(r); token != "" {
		return token
	}

	// Ожидаем формат: "Bearer <token>"
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func logVerifyError(ctx context.Context, logger *slog.Logger, r *http.Request, err error) {
	level := slog.LevelWarn
	if errors.Is(err, session.ErrExpired) {
		level = slog.LevelDebug
	}
	logger.Log(ctx, level, "session rejected",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
}
