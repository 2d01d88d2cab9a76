package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/storage/sqlite"
)

func setupTestTrail(t *testing.T) *Trail {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTrail(logger, store)
}

func TestTrail_Record(t *testing.T) {
	ctx := context.Background()
	trail := setupTestTrail(t)

	actor := Actor{UserID: "u1", Username: "alice", IP: "10.0.0.1"}

	require.NoError(t, trail.Record(ctx, actor, models.ActionDeleteMarker, "m1", map[string]any{"removed_modules": 3}))
	require.NoError(t, trail.Record(ctx, actor, models.ActionLogin, "", nil))
	require.NoError(t, trail.Record(ctx, CLIActor, models.ActionCreateUser, "u2", "bob"))

	entries, total, err := trail.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 3)

	// Новые записи первыми
	cli := entries[0]
	assert.Equal(t, models.ActionCreateUser, cli.Action)
	assert.Nil(t, cli.UserID)
	assert.Equal(t, "cli", cli.Username)
	require.NotNil(t, cli.Detail)
	assert.Equal(t, "bob", *cli.Detail)

	login := entries[1]
	assert.Nil(t, login.Target)
	assert.Nil(t, login.Detail)

	deleted := entries[2]
	require.NotNil(t, deleted.UserID)
	assert.Equal(t, "u1", *deleted.UserID)
	assert.Equal(t, "10.0.0.1", deleted.IP)
	require.NotNil(t, deleted.Target)
	assert.Equal(t, "m1", *deleted.Target)
	require.NotNil(t, deleted.Detail)
	assert.JSONEq(t, `{"removed_modules":3}`, *deleted.Detail)
}

func TestTrail_Record_UnserializableDetail(t *testing.T) {
	ctx := context.Background()
	trail := setupTestTrail(t)

	err := trail.Record(ctx, CLIActor, models.ActionLogin, "", make(chan int))
	assert.Error(t, err)

	_, total, err := trail.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTrail_List_Pagination(t *testing.T) {
	ctx := context.Background()
	trail := setupTestTrail(t)

	for i := 0; i < 7; i++ {
		require.NoError(t, trail.Record(ctx, CLIActor, models.ActionCreateMarker, "", nil))
	}

	entries, total, err := trail.List(ctx, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, entries, 3)

	entries, total, err = trail.List(ctx, 3, 6)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, entries, 1)

	require.NoError(t, trail.Clear(ctx, CLIActor, "audit log cleared"))
	entries, total, err = trail.List(ctx, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionResetLogs, entries[0].Action)
	assert.Equal(t, "cli", entries[0].Username)
}

func TestTrail_Clear_KeepsEntriesOnError(t *testing.T) {
	ctx := context.Background()
	trail := setupTestTrail(t)

	require.NoError(t, trail.Record(ctx, CLIActor, models.ActionCreateMarker, "m1", nil))

	err := trail.Clear(ctx, CLIActor, make(chan int))
	assert.Error(t, err)

	entries, total, err := trail.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.ActionCreateMarker, entries[0].Action)
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: DefaultLimit, wantOffset: 0},
		{name: "negative", limit: -5, offset: -1, wantLimit: DefaultLimit, wantOffset: 0},
		{name: "within range", limit: 20, offset: 40, wantLimit: 20, wantOffset: 40},
		{name: "capped", limit: 10000, offset: 0, wantLimit: MaxLimit, wantOffset: 0},
		{name: "exact cap", limit: MaxLimit, offset: 1, wantLimit: MaxLimit, wantOffset: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ClampPage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
