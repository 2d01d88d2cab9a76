package storage

import (
	"context"

	"github.com/iudanet/starmap/internal/models"
)

// AuditStorage defines interface for the append-only audit journal
type AuditStorage interface {
	// AppendAudit inserts an entry; ID and CreatedAt are filled in on success
	AppendAudit(ctx context.Context, entry *models.AuditEntry) error

	// ListAudit returns entries newest first
	ListAudit(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error)

	// CountAudit returns the total number of entries
	CountAudit(ctx context.Context) (int, error)

	// ClearAudit deletes every entry and appends reset in the same transaction.
	// On error nothing is deleted.
	ClearAudit(ctx context.Context, reset *models.AuditEntry) error
}

// ResetStorage defines the destructive bulk operations of the admin surface.
// Each method runs in a single transaction.
type ResetStorage interface {
	// ResetMap deletes every module and marker
	// Returns number of deleted markers and modules
	ResetMap(ctx context.Context) (markers int, modules int, err error)

	// ResetAll deletes modules, markers, players and the audit journal,
	// then appends reset as the only journal entry
	ResetAll(ctx context.Context, reset *models.AuditEntry) error
}
