package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/starmap/internal/crypto"
	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/session"
	"github.com/iudanet/starmap/internal/server/storage/boltdb"
	"github.com/iudanet/starmap/internal/server/storage/sqlite"
)

func init() {
	// bcrypt с минимальной стоимостью ускоряет тесты
	crypto.HashCost = bcrypt.MinCost
}

type testEnv struct {
	store   *sqlite.Storage
	trail   *audit.Trail
	codec   *session.Codec
	auth    *Auth
	users   *Users
	graph   *Graph
	catalog *Catalog
	admin   *Admin
	root    Caller
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestEnv(t *testing.T) *testEnv {
	ctx := context.Background()
	logger := testLogger()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	revoked, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "revoked.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = revoked.Close() })

	require.NoError(t, Bootstrap(ctx, logger, store, AdminSeed{}))

	trail := audit.NewTrail(logger, store)
	codec := session.NewCodec([]byte("service-test-secret-key"), session.DefaultTTL, revoked)

	rootUser, err := store.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)

	return &testEnv{
		store:   store,
		trail:   trail,
		codec:   codec,
		auth:    NewAuth(logger, store, codec, trail),
		users:   NewUsers(logger, store, trail),
		graph:   NewGraph(logger, store, trail),
		catalog: NewCatalog(logger, store, trail),
		admin:   NewAdmin(logger, store, trail),
		root:    Caller{UserID: rootUser.ID, Username: rootUser.Username, Role: rootUser.Role, IP: "127.0.0.1"},
	}
}

func (e *testEnv) auditCount(t *testing.T) int {
	n, err := e.store.CountAudit(context.Background())
	require.NoError(t, err)
	return n
}

func (e *testEnv) createPlayer(t *testing.T, username string) (*models.User, Caller) {
	user, err := e.users.Create(context.Background(), e.root, username, "secret1", "")
	require.NoError(t, err)
	return user, Caller{UserID: user.ID, Username: user.Username, Role: user.Role, IP: "10.0.0.2"}
}

func (e *testEnv) createBase(t *testing.T, caller Caller, name string) *models.Marker {
	x, y := 0.5, 0.5
	marker, err := e.graph.CreateMarker(context.Background(), caller, MarkerInput{
		Type: models.MarkerTypeBase,
		Name: name,
		NX:   &x,
		NY:   &y,
	})
	require.NoError(t, err)
	return marker
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
