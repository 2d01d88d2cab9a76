package storage

import (
	"context"
	"time"

	"github.com/iudanet/starmap/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username already exists
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns all users ordered by creation time
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CountUsers returns the number of stored users
	CountUsers(ctx context.Context) (int, error)

	// UpdatePassword replaces the password hash
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateRole changes the user role
	// Returns ErrUserNotFound if user doesn't exist
	UpdateRole(ctx context.Context, userID string, role models.Role) error

	// UpdatePreferences applies a partial preferences update in a single statement
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePreferences(ctx context.Context, userID string, patch models.PreferencesPatch) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error

	// DeleteUser deletes user by ID
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID string) error

	// DeletePlayers deletes every user with the player role
	// Returns number of deleted users
	DeletePlayers(ctx context.Context) (int, error)
}
