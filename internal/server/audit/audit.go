// Package audit records state-changing actions in the append-only journal.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/storage"
)

const (
	// DefaultLimit размер страницы журнала по умолчанию
	DefaultLimit = 100
	// MaxLimit максимальный размер страницы журнала
	MaxLimit = 500
)

// Actor описывает, кто выполнил действие
type Actor struct {
	UserID   string // пусто для действий из CLI
	Username string
	IP       string
}

// CLIActor actor for actions run from the command line
var CLIActor = Actor{Username: "cli", IP: "local"}

//go:generate moq -out recorder_mock.go . Recorder

// Recorder appends one journal entry per committed action
type Recorder interface {
	Record(ctx context.Context, actor Actor, action models.AuditAction, target string, detail any) error
}

// Trail is the journal backed by AuditStorage
type Trail struct {
	logger  *slog.Logger
	storage storage.AuditStorage
}

// NewTrail создает журнал аудита
func NewTrail(logger *slog.Logger, storage storage.AuditStorage) *Trail {
	return &Trail{
		logger:  logger,
		storage: storage,
	}
}

// Record добавляет запись. detail сериализуется в JSON; строка сохраняется как есть.
func (t *Trail) Record(ctx context.Context, actor Actor, action models.AuditAction, target string, detail any) error {
	entry, err := NewEntry(actor, action, target, detail)
	if err != nil {
		return err
	}

	if err := t.storage.AppendAudit(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	t.logger.DebugContext(ctx, "audit entry recorded",
		slog.Int64("id", entry.ID),
		slog.String("action", string(action)),
		slog.String("username", actor.Username))

	return nil
}

// NewEntry builds an unsaved journal entry
func NewEntry(actor Actor, action models.AuditAction, target string, detail any) (*models.AuditEntry, error) {
	entry := &models.AuditEntry{
		Username: actor.Username,
		Action:   action,
		IP:       actor.IP,
	}
	if actor.UserID != "" {
		userID := actor.UserID
		entry.UserID = &userID
	}
	if target != "" {
		entry.Target = &target
	}

	serialized, err := serializeDetail(detail)
	if err != nil {
		return nil, err
	}
	entry.Detail = serialized

	return entry, nil
}

// List returns a page of entries newest first and the total count.
// limit is clamped to [1, MaxLimit] with DefaultLimit for non-positive values.
func (t *Trail) List(ctx context.Context, limit, offset int) ([]*models.AuditEntry, int, error) {
	limit, offset = ClampPage(limit, offset)

	entries, err := t.storage.ListAudit(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := t.storage.CountAudit(ctx)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Clear deletes every entry and leaves a single RESET_LOGS entry by actor.
// If that entry cannot be written the journal is left untouched.
func (t *Trail) Clear(ctx context.Context, actor Actor, detail any) error {
	entry, err := NewEntry(actor, models.ActionResetLogs, "", detail)
	if err != nil {
		return err
	}

	if err := t.storage.ClearAudit(ctx, entry); err != nil {
		return fmt.Errorf("failed to clear audit log: %w", err)
	}

	return nil
}

// ClampPage normalizes pagination parameters of the journal listing
func ClampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func serializeDetail(detail any) (*string, error) {
	switch v := detail.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return &v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit detail: %w", err)
		}
		s := string(data)
		return &s, nil
	}
}
