package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/internal/server/storage"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantKind   string
		wantStatus int
	}{
		{name: "invalid credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantKind: KindUnauthenticated},
		{name: "forbidden", err: fmt.Errorf("cannot delete yourself: %w", service.ErrForbidden), wantStatus: http.StatusForbidden, wantKind: KindForbidden},
		{name: "marker not found", err: storage.ErrMarkerNotFound, wantStatus: http.StatusNotFound, wantKind: KindNotFound},
		{name: "invalid input", err: storage.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantKind: KindInvalidInput},
		{name: "base not found", err: storage.ErrBaseNotFound, wantStatus: http.StatusBadRequest, wantKind: KindInvalidReference},
		{name: "duplicate user", err: storage.ErrUserAlreadyExists, wantStatus: http.StatusConflict, wantKind: KindConflict},
		{name: "unknown", err: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantKind: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestSendServiceError_HidesInternalDetails(t *testing.T) {
	h := base{logger: setupTestLogger()}

	w := httptest.NewRecorder()
	h.sendServiceError(w, httptest.NewRequest(http.MethodGet, "/api/markers", nil), errors.New("sql: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestDecode(t *testing.T) {
	h := base{logger: setupTestLogger()}

	t.Run("malformed body", func(t *testing.T) {
		var dst struct{ Name string }
		w := httptest.NewRecorder()
		ok := h.decode(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &dst)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		var dst struct{ Name string }
		body := `{"Name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		w := httptest.NewRecorder()
		ok := h.decode(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &dst)
		assert.False(t, ok)
	})
}

func TestQueryInt(t *testing.T) {
	assert.Equal(t, 100, queryInt("", 100))
	assert.Equal(t, 25, queryInt("25", 100))
	assert.Equal(t, 100, queryInt("abc", 100))
	assert.Equal(t, -1, queryInt("-1", 100))
}

func TestCallerFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := callerFrom(req)
	assert.False(t, ok)

	req.RemoteAddr = "198.51.100.4:4444"
	assert.Equal(t, "198.51.100.4", ClientIP(req))
}
