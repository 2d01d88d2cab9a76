package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/starmap/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage, role models.Role) *models.User {
	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     "user_" + userID[:8],
		PasswordHash: "hash",
		Role:         role,
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    time.Now().UTC(),
	}

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	return user
}

func createTestMarker(t *testing.T, ctx context.Context, s *Storage, markerType string) *models.Marker {
	now := time.Now().UTC()
	marker := &models.Marker{
		ID:          uuid.New().String(),
		Type:        markerType,
		Name:        "marker " + markerType,
		Description: "test marker",
		NX:          0.25,
		NY:          0.75,
		CreatedBy:   "tester",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.CreateMarker(ctx, marker)
	require.NoError(t, err)

	return marker
}

func newTestModule(baseID string, kind models.ModuleKind) *models.Module {
	return &models.Module{
		ID:         uuid.New().String(),
		Kind:       kind,
		Name:       "module " + string(kind),
		BaseID:     baseID,
		ResourceID: "wolfram-ore",
		CreatedBy:  "tester",
		CreatedAt:  time.Now().UTC(),
	}
}

func createTestModule(t *testing.T, ctx context.Context, s *Storage, baseID string, kind models.ModuleKind) *models.Module {
	module := newTestModule(baseID, kind)
	err := s.CreateModule(ctx, module)
	require.NoError(t, err)
	return module
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
