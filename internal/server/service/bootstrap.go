package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/starmap/internal/crypto"
	"github.com/iudanet/starmap/internal/models"
)

const (
	// DefaultAdminUsername имя первого администратора
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword пароль первого администратора, если он не задан в конфигурации
	DefaultAdminPassword = "admin1234"
)

// AdminSeed credentials of the administrator created on an empty store
type AdminSeed struct {
	Username string
	Password string
}

// BootstrapStore is the persistence touched by Bootstrap
type BootstrapStore interface {
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, user *models.User) error
	CountResources(ctx context.Context) (int, error)
	SeedResources(ctx context.Context, resources []models.Resource) error
}

// Bootstrap заполняет пустое хранилище: справочник ресурсов и первый администратор.
// Повторный вызов ничего не меняет.
func Bootstrap(ctx context.Context, logger *slog.Logger, store BootstrapStore, seed AdminSeed) error {
	resources, err := store.CountResources(ctx)
	if err != nil {
		return err
	}
	if resources == 0 {
		catalog := DefaultResources()
		if err := store.SeedResources(ctx, catalog); err != nil {
			return fmt.Errorf("failed to seed resources: %w", err)
		}
		logger.InfoContext(ctx, "resource catalog seeded", slog.Int("count", len(catalog)))
	}

	users, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	username := seed.Username
	if username == "" {
		username = DefaultAdminUsername
	}
	password := seed.Password
	if password == "" {
		password = DefaultAdminPassword
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	if seed.Password == "" {
		// Пароль по умолчанию показывается один раз, заданный в конфигурации не логируется
		logger.WarnContext(ctx, "admin user created with the default password, change it",
			slog.String("username", username),
			slog.String("password", DefaultAdminPassword))
	} else {
		logger.InfoContext(ctx, "admin user created", slog.String("username", username))
	}

	return nil
}
