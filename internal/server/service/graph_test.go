package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/storage"
)

func TestGraph_CreateMarker(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	_, player := env.createPlayer(t, "pilot")
	before := env.auditCount(t)

	marker, err := env.graph.CreateMarker(ctx, player, MarkerInput{
		Type: "poi",
		Name: "Crash site",
		NX:   floatPtr(0.1),
		NY:   floatPtr(0.9),
	})
	require.NoError(t, err)
	assert.Equal(t, player.UserID, marker.CreatedBy)
	assert.Equal(t, before+1, env.auditCount(t))

	invalid := []MarkerInput{
		{Type: "poi", Name: "No coords"},
		{Type: "poi", Name: "Out of map", NX: floatPtr(1.5), NY: floatPtr(0.5)},
		{Type: "", Name: "No type", NX: floatPtr(0.5), NY: floatPtr(0.5)},
		{Type: "poi", Name: "", NX: floatPtr(0.5), NY: floatPtr(0.5)},
	}
	for _, in := range invalid {
		_, err := env.graph.CreateMarker(ctx, player, in)
		assert.ErrorIs(t, err, storage.ErrInvalidInput)
	}
	assert.Equal(t, before+1, env.auditCount(t))
}

func TestGraph_UpdateMarker(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	base := env.createBase(t, env.root, "Alpha")

	name := "Alpha Prime"
	updated, err := env.graph.UpdateMarker(ctx, env.root, base.ID, models.MarkerPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", updated.Name)
	assert.Equal(t, models.MarkerTypeBase, updated.Type)
	assert.InDelta(t, 0.5, updated.NX, 1e-9)

	before := env.auditCount(t)
	_, err = env.graph.UpdateMarker(ctx, env.root, base.ID, models.MarkerPatch{NX: floatPtr(-1)})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	stored, err := env.graph.GetMarker(ctx, base.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, stored.NX, 1e-9)

	_, err = env.graph.UpdateMarker(ctx, env.root, "missing", models.MarkerPatch{Name: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, before, env.auditCount(t))
}

func TestGraph_ModuleFlow(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	baseA := env.createBase(t, env.root, "A")
	baseB := env.createBase(t, env.root, "B")

	recv, err := env.graph.CreateModule(ctx, env.root, ModuleInput{
		Kind:       "recv",
		Name:       "Ore in",
		BaseID:     baseB.ID,
		ResourceID: "wolfram-ore",
		Qty:        intPtr(99),
	})
	require.NoError(t, err)
	assert.Nil(t, recv.Qty)

	send, err := env.graph.CreateModule(ctx, env.root, ModuleInput{
		Kind:       "send",
		Name:       "Ore out",
		BaseID:     baseA.ID,
		ResourceID: "wolfram-ore",
		Qty:        intPtr(50),
		DestBaseID: strPtr(baseB.ID),
		DestRecvID: strPtr(recv.ID),
	})
	require.NoError(t, err)

	stored, err := env.graph.GetModule(ctx, send.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Qty)
	assert.Equal(t, 50, *stored.Qty)
	assert.Equal(t, baseB.ID, *stored.DestBaseID)
	assert.Equal(t, recv.ID, *stored.DestRecvID)

	onA, err := env.graph.ListModules(ctx, baseA.ID)
	require.NoError(t, err)
	assert.Len(t, onA, 1)

	// Обновление: qty и назначение заменяются целиком
	newName := "Ore out v2"
	updated, err := env.graph.UpdateModule(ctx, env.root, send.ID, models.ModuleUpdate{Name: &newName, Qty: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Ore out v2", updated.Name)
	assert.Equal(t, "wolfram-ore", updated.ResourceID)
	assert.Nil(t, updated.Qty)
	assert.Nil(t, updated.DestBaseID)
	assert.Equal(t, models.ModuleSend, updated.Kind)
	assert.Equal(t, baseA.ID, updated.BaseID)

	_, err = env.graph.UpdateModule(ctx, env.root, send.ID, models.ModuleUpdate{DestBaseID: strPtr(baseA.ID)})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	// Удаление базы B уносит ее recv-модуль; ссылка отправителя остается висячей
	removed, err := env.graph.DeleteMarker(ctx, env.root, baseB.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = env.graph.GetModule(ctx, recv.ID)
	assert.ErrorIs(t, err, storage.ErrModuleNotFound)

	require.NoError(t, env.graph.DeleteModule(ctx, env.root, send.ID))
	assert.ErrorIs(t, env.graph.DeleteModule(ctx, env.root, send.ID), storage.ErrNotFound)
}

func TestGraph_CreateModule_InvalidBase(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	x, y := 0.3, 0.3
	poi, err := env.graph.CreateMarker(ctx, env.root, MarkerInput{Type: "poi", Name: "Wreck", NX: &x, NY: &y})
	require.NoError(t, err)

	before := env.auditCount(t)
	modulesBefore, err := env.store.CountModules(ctx)
	require.NoError(t, err)

	for _, baseID := range []string{poi.ID, "does-not-exist"} {
		_, err := env.graph.CreateModule(ctx, env.root, ModuleInput{
			Kind:       "recv",
			Name:       "Orphan",
			BaseID:     baseID,
			ResourceID: "wolfram-ore",
		})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	}

	_, err = env.graph.CreateModule(ctx, env.root, ModuleInput{
		Kind:       "sideways",
		Name:       "Odd",
		BaseID:     poi.ID,
		ResourceID: "wolfram-ore",
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	modulesAfter, err := env.store.CountModules(ctx)
	require.NoError(t, err)
	assert.Equal(t, modulesBefore, modulesAfter)
	assert.Equal(t, before, env.auditCount(t))
}

func TestGraph_CreateModule_AdvisoryLinks(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	base := env.createBase(t, env.root, "A")

	// Неизвестный ресурс и назначение допускаются
	module, err := env.graph.CreateModule(ctx, env.root, ModuleInput{
		Kind:       "send",
		Name:       "Mystery",
		BaseID:     base.ID,
		ResourceID: "unobtainium",
		DestBaseID: strPtr("nowhere"),
		DestRecvID: strPtr("nobody"),
	})
	require.NoError(t, err)
	assert.Equal(t, "unobtainium", module.ResourceID)
}

func TestGraph_AuditFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	recorder := &audit.RecorderMock{
		RecordFunc: func(ctx context.Context, actor audit.Actor, action models.AuditAction, target string, detail any) error {
			return errors.New("journal unavailable")
		},
	}
	graph := NewGraph(testLogger(), env.store, recorder)

	marker, err := graph.CreateMarker(ctx, env.root, MarkerInput{
		Type: models.MarkerTypeBase,
		Name: "Alpha",
		NX:   floatPtr(0.2),
		NY:   floatPtr(0.2),
	})
	require.NoError(t, err)

	_, err = env.store.GetMarker(ctx, marker.ID)
	require.NoError(t, err)

	calls := recorder.RecordCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.ActionCreateMarker, calls[0].Action)
	assert.Equal(t, marker.ID, calls[0].Target)
	assert.Equal(t, env.root.Username, calls[0].Actor.Username)
}

func TestGraph_RecordsOncePerMutation(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	recorder := &audit.RecorderMock{
		RecordFunc: func(ctx context.Context, actor audit.Actor, action models.AuditAction, target string, detail any) error {
			return nil
		},
	}
	graph := NewGraph(testLogger(), env.store, recorder)

	base, err := graph.CreateMarker(ctx, env.root, MarkerInput{Type: models.MarkerTypeBase, Name: "A", NX: floatPtr(0), NY: floatPtr(0)})
	require.NoError(t, err)

	module, err := graph.CreateModule(ctx, env.root, ModuleInput{Kind: "recv", Name: "In", BaseID: base.ID, ResourceID: "glass"})
	require.NoError(t, err)

	_, err = graph.DeleteMarker(ctx, env.root, base.ID)
	require.NoError(t, err)

	// Неудачная операция не пишет журнал
	assert.Error(t, graph.DeleteModule(ctx, env.root, module.ID))

	calls := recorder.RecordCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, models.ActionCreateMarker, calls[0].Action)
	assert.Equal(t, models.ActionCreateModule, calls[1].Action)
	assert.Equal(t, models.ActionDeleteMarker, calls[2].Action)
	assert.Equal(t, map[string]any{"removed_modules": 1}, calls[2].Detail)
}
