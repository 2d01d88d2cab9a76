package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/storage"
)

type moduleRow struct {
	CreatedAt  time.Time      `db:"created_at"`
	Qty        sql.NullInt64  `db:"qty"`
	DestBaseID sql.NullString `db:"dest_base_id"`
	DestRecvID sql.NullString `db:"dest_recv_id"`
	ID         string         `db:"id"`
	Kind       string         `db:"kind"`
	Name       string         `db:"name"`
	BaseID     string         `db:"base_id"`
	ResourceID string         `db:"resource_id"`
	CreatedBy  string         `db:"created_by"`
}

func (r moduleRow) toModel() *models.Module {
	module := &models.Module{
		ID:         r.ID,
		Kind:       models.ModuleKind(r.Kind),
		Name:       r.Name,
		BaseID:     r.BaseID,
		ResourceID: r.ResourceID,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}
	if r.Qty.Valid {
		qty := int(r.Qty.Int64)
		module.Qty = &qty
	}
	if r.DestBaseID.Valid {
		module.DestBaseID = &r.DestBaseID.String
	}
	if r.DestRecvID.Valid {
		module.DestRecvID = &r.DestRecvID.String
	}
	return module
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

const moduleColumns = `id, kind, name, base_id, resource_id, qty, dest_base_id, dest_recv_id, created_by, created_at`

// CreateModule inserts a module after validating its kind and base
func (s *Storage) CreateModule(ctx context.Context, module *models.Module) error {
	if !module.Kind.Valid() {
		return storage.ErrInvalidModuleKind
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		// base_id должен указывать на существующий маркер типа base
		base, err := getMarker(ctx, tx, module.BaseID)
		if err != nil {
			if errors.Is(err, storage.ErrMarkerNotFound) {
				return storage.ErrBaseNotFound
			}
			return err
		}
		if !base.IsBase() {
			return storage.ErrBaseNotFound
		}

		query := `INSERT INTO modules (` + moduleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err = tx.ExecContext(ctx, query,
			module.ID,
			string(module.Kind),
			module.Name,
			module.BaseID,
			module.ResourceID,
			nullInt(module.Qty),
			nullString(module.DestBaseID),
			nullString(module.DestRecvID),
			module.CreatedBy,
			module.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert module: %w", err)
		}

		return nil
	})
}

// GetModule retrieves module by ID
func (s *Storage) GetModule(ctx context.Context, id string) (*models.Module, error) {
	return getModule(ctx, s.db, id)
}

func getModule(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Module, error) {
	var row moduleRow
	if err := sqlx.GetContext(ctx, q, &row, `SELECT `+moduleColumns+` FROM modules WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return row.toModel(), nil
}

// ListModules returns modules ordered by creation time, optionally for one base
func (s *Storage) ListModules(ctx context.Context, baseID string) ([]*models.Module, error) {
	var rows []moduleRow
	var err error
	if baseID == "" {
		err = s.db.SelectContext(ctx, &rows, `SELECT `+moduleColumns+` FROM modules ORDER BY created_at, id`)
	} else {
		err = s.db.SelectContext(ctx, &rows, `SELECT `+moduleColumns+` FROM modules WHERE base_id = ? ORDER BY created_at, id`, baseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	modules := make([]*models.Module, 0, len(rows))
	for _, row := range rows {
		modules = append(modules, row.toModel())
	}
	return modules, nil
}

// CountModules returns the number of stored modules
func (s *Storage) CountModules(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM modules`); err != nil {
		return 0, fmt.Errorf("failed to count modules: %w", err)
	}
	return n, nil
}

// UpdateModule reads, mutates and writes back a module in one transaction
func (s *Storage) UpdateModule(ctx context.Context, id string, mutate func(*models.Module) error) (*models.Module, error) {
	var updated *models.Module

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		module, err := getModule(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := mutate(module); err != nil {
			return err
		}

		if !module.Kind.Valid() {
			return storage.ErrInvalidModuleKind
		}

		// kind и base_id не меняются после создания
		_, err = tx.ExecContext(ctx, `
			UPDATE modules
			SET name = ?, resource_id = ?, qty = ?, dest_base_id = ?, dest_recv_id = ?
			WHERE id = ?
		`,
			module.Name,
			module.ResourceID,
			nullInt(module.Qty),
			nullString(module.DestBaseID),
			nullString(module.DestRecvID),
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update module: %w", err)
		}

		updated, err = getModule(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteModule deletes module by ID
func (s *Storage) DeleteModule(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM modules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrModuleNotFound
	}

	return nil
}
