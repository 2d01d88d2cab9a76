package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/storage"
)

// userRow maps 1:1 to the users table columns
type userRow struct {
	CreatedAt        time.Time    `db:"created_at"`
	LastLogin        sql.NullTime `db:"last_login"`
	ID               string       `db:"id"`
	Username         string       `db:"username"`
	PasswordHash     string       `db:"password_hash"`
	Role             string       `db:"role"`
	UITheme          string       `db:"ui_theme"`
	UIShowBaseLabels bool         `db:"ui_show_base_labels"`
}

func (r userRow) toModel() *models.User {
	user := &models.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         models.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		Preferences: models.Preferences{
			Theme:          models.Theme(r.UITheme),
			ShowBaseLabels: r.UIShowBaseLabels,
		},
	}
	if r.LastLogin.Valid {
		lastLogin := r.LastLogin.Time
		user.LastLogin = &lastLogin
	}
	return user
}

const userColumns = `id, username, password_hash, role, ui_theme, ui_show_base_labels, created_at, last_login`

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var lastLogin sql.NullTime
	if user.LastLogin != nil {
		lastLogin = sql.NullTime{Time: *user.LastLogin, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		string(user.Preferences.Theme),
		user.Preferences.ShowBaseLabels,
		user.CreatedAt,
		lastLogin,
	)

	if err != nil {
		// Проверяем на duplicate username
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.toModel(), nil
}

// ListUsers returns all users ordered by creation time
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users ORDER BY created_at, username`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

// CountUsers returns the number of stored users
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// UpdatePassword replaces the password hash
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.execUserUpdate(ctx, "password",
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
}

// UpdateRole changes the user role
func (s *Storage) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	return s.execUserUpdate(ctx, "role",
		`UPDATE users SET role = ? WHERE id = ?`, string(role), userID)
}

// UpdatePreferences applies a partial preferences update
// Поля со значением NULL сохраняют текущее значение через COALESCE
func (s *Storage) UpdatePreferences(ctx context.Context, userID string, patch models.PreferencesPatch) error {
	var theme sql.NullString
	if patch.Theme != nil {
		theme = sql.NullString{String: string(*patch.Theme), Valid: true}
	}
	var showLabels sql.NullBool
	if patch.ShowBaseLabels != nil {
		showLabels = sql.NullBool{Bool: *patch.ShowBaseLabels, Valid: true}
	}

	return s.execUserUpdate(ctx, "preferences", `
		UPDATE users
		SET ui_theme = COALESCE(?, ui_theme),
		    ui_show_base_labels = COALESCE(?, ui_show_base_labels)
		WHERE id = ?
	`, theme, showLabels, userID)
}

// UpdateLastLogin updates the last login timestamp
func (s *Storage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	return s.execUserUpdate(ctx, "last login",
		`UPDATE users SET last_login = ? WHERE id = ?`, lastLogin, userID)
}

// DeleteUser deletes user by ID
func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	return s.execUserUpdate(ctx, "delete", `DELETE FROM users WHERE id = ?`, userID)
}

// DeletePlayers deletes every user with the player role
func (s *Storage) DeletePlayers(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE role = ?`, string(models.RolePlayer))
	if err != nil {
		return 0, fmt.Errorf("failed to delete players: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// execUserUpdate выполняет изменение одной строки users и возвращает ErrUserNotFound, если строка не найдена
func (s *Storage) execUserUpdate(ctx context.Context, what, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", what, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
