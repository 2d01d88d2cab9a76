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

type markerRow struct {
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	ID          string    `db:"id"`
	Type        string    `db:"type"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedBy   string    `db:"created_by"`
	NX          float64   `db:"nx"`
	NY          float64   `db:"ny"`
}

func (r markerRow) toModel() *models.Marker {
	return &models.Marker{
		ID:          r.ID,
		Type:        r.Type,
		Name:        r.Name,
		Description: r.Description,
		NX:          r.NX,
		NY:          r.NY,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const markerColumns = `id, type, name, description, nx, ny, created_by, created_at, updated_at`

// CreateMarker inserts a new marker
func (s *Storage) CreateMarker(ctx context.Context, marker *models.Marker) error {
	query := `INSERT INTO markers (` + markerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		marker.ID,
		marker.Type,
		marker.Name,
		marker.Description,
		marker.NX,
		marker.NY,
		marker.CreatedBy,
		marker.CreatedAt,
		marker.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert marker: %w", err)
	}

	return nil
}

// GetMarker retrieves marker by ID
func (s *Storage) GetMarker(ctx context.Context, id string) (*models.Marker, error) {
	return getMarker(ctx, s.db, id)
}

// getMarker работает как с *sqlx.DB, так и с *sqlx.Tx
func getMarker(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Marker, error) {
	var row markerRow
	if err := sqlx.GetContext(ctx, q, &row, `SELECT `+markerColumns+` FROM markers WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMarkerNotFound
		}
		return nil, fmt.Errorf("failed to get marker: %w", err)
	}
	return row.toModel(), nil
}

// ListMarkers returns all markers ordered by creation time
func (s *Storage) ListMarkers(ctx context.Context) ([]*models.Marker, error) {
	var rows []markerRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+markerColumns+` FROM markers ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to list markers: %w", err)
	}

	markers := make([]*models.Marker, 0, len(rows))
	for _, row := range rows {
		markers = append(markers, row.toModel())
	}
	return markers, nil
}

// UpdateMarker reads, mutates and writes back a marker in one transaction
func (s *Storage) UpdateMarker(ctx context.Context, id string, mutate func(*models.Marker) error) (*models.Marker, error) {
	var updated *models.Marker

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		marker, err := getMarker(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := mutate(marker); err != nil {
			return err
		}

		// ID, тип и автор не меняются, даже если mutate их затронул
		marker.UpdatedAt = time.Now().UTC()
		_, err = tx.ExecContext(ctx, `
			UPDATE markers
			SET name = ?, description = ?, nx = ?, ny = ?, updated_at = ?
			WHERE id = ?
		`, marker.Name, marker.Description, marker.NX, marker.NY, marker.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update marker: %w", err)
		}

		updated, err = getMarker(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteMarker removes the marker and its modules in one transaction
func (s *Storage) DeleteMarker(ctx context.Context, id string) (int, error) {
	var removedModules int

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		// Модули удаляются явно, чтобы вернуть их количество;
		// ON DELETE CASCADE остается страховкой на уровне схемы
		result, err := tx.ExecContext(ctx, `DELETE FROM modules WHERE base_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete marker modules: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		removedModules = int(n)

		result, err = tx.ExecContext(ctx, `DELETE FROM markers WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete marker: %w", err)
		}
		n, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return storage.ErrMarkerNotFound
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return removedModules, nil
}
