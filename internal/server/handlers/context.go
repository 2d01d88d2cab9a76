package handlers

import (
	"context"
	"net"
	"net/http"

	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/internal/server/session"
)

// contextKey тип для ключей контекста
type contextKey string

// ClaimsKey ключ для хранения claims сессии в контексте
const ClaimsKey contextKey = "claims"

// WithClaims returns a copy of ctx carrying verified session claims
func WithClaims(ctx context.Context, claims *session.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims извлекает claims сессии из контекста запроса
func GetClaims(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*session.Claims)
	return claims, ok && claims != nil
}

// ClientIP returns the client address without port.
// RealIP middleware has already replaced RemoteAddr with the forwarded address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// callerFrom строит принципала из claims токена, без обращения к хранилищу
func callerFrom(r *http.Request) (service.Caller, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		IP:       ClientIP(r),
	}, true
}
