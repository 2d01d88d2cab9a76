package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/handlers"
	"github.com/iudanet/starmap/internal/server/session"
	"github.com/iudanet/starmap/internal/server/storage/boltdb"
	"github.com/iudanet/starmap/pkg/api"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newCodec(t *testing.T) *session.Codec {
	t.Helper()
	revoked, err := boltdb.New(t.Context(), filepath.Join(t.TempDir(), "revoked.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = revoked.Close() })
	return session.NewCodec(testSecret, session.DefaultTTL, revoked)
}

func issue(t *testing.T, codec *session.Codec, role models.Role) (string, *session.Claims) {
	t.Helper()
	token, claims, err := codec.Issue(&models.User{ID: "user-1", Username: "alice", Role: role})
	require.NoError(t, err)
	return token, claims
}

// claimsHandler проверяет, что claims попали в контекст
func claimsHandler(t *testing.T, wantUsername string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := handlers.GetClaims(r.Context())
		require.True(t, ok, "claims should be in context")
		assert.Equal(t, wantUsername, claims.Username)
		okHandler(w, r)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAPIAuth(t *testing.T) {
	codec := newCodec(t)
	token, _ := issue(t, codec, models.RolePlayer)

	otherCodec := session.NewCodec([]byte("another-secret-another-secret!!"), session.DefaultTTL, nil)
	foreign, _ := issue(t, otherCodec, models.RolePlayer)

	tests := []struct {
		setup       func(r *http.Request)
		name        string
		wantMessage string
		wantStatus  int
	}{
		{
			name:       "bearer token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase bearer",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) },
			wantStatus: http.StatusOK,
		},
		{
			name: "cookie token",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: token})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "cookie takes precedence over header",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: token})
				r.Header.Set("Authorization", "Bearer garbage")
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "no token",
			setup:       func(*http.Request) {},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "authentication required",
		},
		{
			name:        "basic scheme",
			setup:       func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwYXNz") },
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "authentication required",
		},
		{
			name:        "garbage token",
			setup:       func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.jwt") },
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "session invalid or expired",
		},
		{
			name:        "token signed with another secret",
			setup:       func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreign) },
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "session invalid or expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := APIAuth(discardLogger(), codec)(claimsHandler(t, "alice"))

			req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				resp := decodeError(t, w)
				assert.Equal(t, handlers.KindUnauthenticated, resp.Error)
				assert.Equal(t, tt.wantMessage, resp.Message)
			}
		})
	}
}

func TestAPIAuth_RevokedToken(t *testing.T) {
	codec := newCodec(t)
	token, claims := issue(t, codec, models.RolePlayer)
	require.NoError(t, codec.Revoke(t.Context(), claims))

	handler := APIAuth(discardLogger(), codec)(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	codec := newCodec(t)
	adminToken, _ := issue(t, codec, models.RoleAdmin)
	playerToken, _ := issue(t, codec, models.RolePlayer)

	chain := APIAuth(discardLogger(), codec)(RequireAdmin(discardLogger())(http.HandlerFunc(okHandler)))

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		chain.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("player is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+playerToken)
		w := httptest.NewRecorder()
		chain.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, handlers.KindForbidden, decodeError(t, w).Error)
	})

	t.Run("without claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(discardLogger())(http.HandlerFunc(okHandler)).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func assertNoCache(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "no-store, no-cache, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
}

func TestPageAuth(t *testing.T) {
	codec := newCodec(t)
	token, _ := issue(t, codec, models.RolePlayer)
	handler := PageAuth(discardLogger(), codec)(claimsHandler(t, "alice"))

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assertNoCache(t, w)
	})

	t.Run("missing cookie redirects with next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/index.html?x=1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?next=%2Findex.html%3Fx%3D1", w.Header().Get("Location"))
		assertNoCache(t, w)
	})

	t.Run("bearer header is ignored for pages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?next=%2F", w.Header().Get("Location"))
	})

	t.Run("expired cookie redirects", func(t *testing.T) {
		expired := session.NewCodec(testSecret, -time.Hour, nil)
		old, _ := issue(t, expired, models.RolePlayer)
		req := httptest.NewRequest(http.MethodGet, "/map_starrupture.png", nil)
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: old})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?next=%2Fmap_starrupture.png", w.Header().Get("Location"))
	})
}

func TestPageAdmin(t *testing.T) {
	codec := newCodec(t)
	adminToken, _ := issue(t, codec, models.RoleAdmin)
	playerToken, _ := issue(t, codec, models.RolePlayer)

	chain := PageAuth(discardLogger(), codec)(PageAdmin(discardLogger())(http.HandlerFunc(okHandler)))

	tests := []struct {
		name         string
		token        string
		wantLocation string
		wantStatus   int
	}{
		{name: "admin", token: adminToken, wantStatus: http.StatusOK},
		{name: "player", token: playerToken, wantStatus: http.StatusFound, wantLocation: "/?err=forbidden"},
		{name: "anonymous", wantStatus: http.StatusFound, wantLocation: "/login?next=%2Fadmin.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin.html", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: tt.token})
			}
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			assertNoCache(t, w)
		})
	}
}
