package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/storage"
)

type resourceRow struct {
	ID        string `db:"id"`
	Label     string `db:"label"`
	Category  string `db:"category"`
	Color     string `db:"color"`
	SortOrder int    `db:"sort_order"`
}

func (r resourceRow) toModel() *models.Resource {
	return &models.Resource{
		ID:        r.ID,
		Label:     r.Label,
		Category:  r.Category,
		Color:     r.Color,
		SortOrder: r.SortOrder,
	}
}

const resourceColumns = `id, label, category, color, sort_order`

// ListResources returns the catalog ordered by sort order, category and label
func (s *Storage) ListResources(ctx context.Context) ([]*models.Resource, error) {
	var rows []resourceRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+resourceColumns+` FROM resources ORDER BY sort_order, category, label`); err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	resources := make([]*models.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, row.toModel())
	}
	return resources, nil
}

// GetResource retrieves a catalog entry by ID
func (s *Storage) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	var row resourceRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return row.toModel(), nil
}

// CreateResource inserts a catalog entry, assigning a sort position when unset
func (s *Storage) CreateResource(ctx context.Context, resource *models.Resource) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if resource.SortOrder == 0 {
			// Новые ресурсы по умолчанию идут после существующих
			var maxOrder sql.NullInt64
			if err := tx.GetContext(ctx, &maxOrder, `SELECT MAX(sort_order) FROM resources`); err != nil {
				return fmt.Errorf("failed to get max sort order: %w", err)
			}
			resource.SortOrder = int(maxOrder.Int64) + storage.SortOrderStep
		}

		if err := insertResource(ctx, tx, resource); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrResourceAlreadyExists
			}
			return err
		}
		return nil
	})
}

func insertResource(ctx context.Context, tx *sqlx.Tx, r *models.Resource) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO resources (`+resourceColumns+`) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Label, r.Category, r.Color, r.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resource: %w", err)
	}
	return nil
}

// UpdateResource replaces label, category and color of an entry
func (s *Storage) UpdateResource(ctx context.Context, resource *models.Resource) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE resources SET label = ?, category = ?, color = ? WHERE id = ?`,
		resource.Label, resource.Category, resource.Color, resource.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrResourceNotFound
	}

	return nil
}

// CountResources returns the number of catalog entries
func (s *Storage) CountResources(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM resources`); err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return n, nil
}

// SeedResources inserts the given entries in one transaction
func (s *Storage) SeedResources(ctx context.Context, resources []models.Resource) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for i := range resources {
			if err := insertResource(ctx, tx, &resources[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
