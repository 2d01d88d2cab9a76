package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iudanet/starmap/internal/models"
)

type auditRow struct {
	CreatedAt time.Time      `db:"created_at"`
	UserID    sql.NullString `db:"user_id"`
	Target    sql.NullString `db:"target"`
	Detail    sql.NullString `db:"detail"`
	Username  string         `db:"username"`
	Action    string         `db:"action"`
	IP        string         `db:"ip"`
	ID        int64          `db:"id"`
}

func (r auditRow) toModel() *models.AuditEntry {
	entry := &models.AuditEntry{
		ID:        r.ID,
		Username:  r.Username,
		Action:    models.AuditAction(r.Action),
		IP:        r.IP,
		CreatedAt: r.CreatedAt,
	}
	if r.UserID.Valid {
		entry.UserID = &r.UserID.String
	}
	if r.Target.Valid {
		entry.Target = &r.Target.String
	}
	if r.Detail.Valid {
		entry.Detail = &r.Detail.String
	}
	return entry
}

// AppendAudit inserts an entry and fills in its ID and CreatedAt
func (s *Storage) AppendAudit(ctx context.Context, entry *models.AuditEntry) error {
	return insertAudit(ctx, s.db, entry)
}

func insertAudit(ctx context.Context, e sqlx.ExecerContext, entry *models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := e.ExecContext(ctx, `
		INSERT INTO audit_log (user_id, username, action, target, detail, ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		nullString(entry.UserID),
		entry.Username,
		string(entry.Action),
		nullString(entry.Target),
		nullString(entry.Detail),
		entry.IP,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get audit entry id: %w", err)
	}
	entry.ID = id

	return nil
}

// ListAudit returns entries newest first
func (s *Storage) ListAudit(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error) {
	var rows []auditRow
	// id монотонно растет, поэтому сортировка по нему стабильнее, чем по времени
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, username, action, target, detail, ip, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*models.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toModel())
	}
	return entries, nil
}

// CountAudit returns the total number of entries
func (s *Storage) CountAudit(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM audit_log`); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return n, nil
}

// ClearAudit deletes every entry and appends reset in one transaction.
// The id sequence keeps growing afterwards.
func (s *Storage) ClearAudit(ctx context.Context, reset *models.AuditEntry) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM audit_log`); err != nil {
			return fmt.Errorf("failed to clear audit log: %w", err)
		}
		// Журнал не может остаться пустым без записи о сбросе
		return insertAudit(ctx, tx, reset)
	})
}

// ResetMap deletes every module and marker in one transaction
func (s *Storage) ResetMap(ctx context.Context) (int, int, error) {
	var markers, modules int

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if modules, err = execCount(ctx, tx, `DELETE FROM modules`); err != nil {
			return fmt.Errorf("failed to delete modules: %w", err)
		}
		if markers, err = execCount(ctx, tx, `DELETE FROM markers`); err != nil {
			return fmt.Errorf("failed to delete markers: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return markers, modules, nil
}

// ResetAll deletes modules, markers, players and the audit journal and appends
// reset in one transaction
func (s *Storage) ResetAll(ctx context.Context, reset *models.AuditEntry) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		statements := []struct {
			query string
			args  []any
		}{
			{query: `DELETE FROM modules`},
			{query: `DELETE FROM markers`},
			{query: `DELETE FROM users WHERE role = ?`, args: []any{string(models.RolePlayer)}},
			{query: `DELETE FROM audit_log`},
		}

		for _, st := range statements {
			if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
				return fmt.Errorf("failed to reset (%s): %w", st.query, err)
			}
		}
		return insertAudit(ctx, tx, reset)
	})
}

func execCount(ctx context.Context, tx *sqlx.Tx, query string) (int, error) {
	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
