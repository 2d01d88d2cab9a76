package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/starmap/internal/crypto"
	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/storage"
	"github.com/iudanet/starmap/internal/validation"
)

// Users implements account management for admins and the CLI
type Users struct {
	logger *slog.Logger
	users  storage.UserStorage
	journal
}

// NewUsers создает сервис управления пользователями
func NewUsers(logger *slog.Logger, users storage.UserStorage, recorder audit.Recorder) *Users {
	return &Users{
		logger:  logger,
		users:   users,
		journal: journal{logger: logger, recorder: recorder},
	}
}

// List returns every account
func (s *Users) List(ctx context.Context, caller Caller) ([]*models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

// Create создает учетную запись; пустая роль означает player
func (s *Users) Create(ctx context.Context, caller Caller, username, password, role string) (*models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	if err := validation.ValidateUsername(username); err != nil {
		return nil, invalidInput(err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, invalidInput(err)
	}
	parsedRole, err := validation.ParseRole(role)
	if err != nil {
		return nil, invalidInput(err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         parsedRole,
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.ActionCreateUser, user.ID, map[string]any{
		"username": user.Username,
		"role":     user.Role,
	})

	s.logger.InfoContext(ctx, "user created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))

	return user, nil
}

// ResetPassword заменяет пароль пользователя
func (s *Users) ResetPassword(ctx context.Context, caller Caller, userID, password string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return invalidInput(err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.record(ctx, caller, models.ActionResetPassword, userID, nil)
	return nil
}

// ResetPasswordByUsername is the CLI variant of ResetPassword
func (s *Users) ResetPasswordByUsername(ctx context.Context, caller Caller, username, password string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.ResetPassword(ctx, caller, user.ID, password)
}

// ChangeRole меняет роль. Выданные токены сохраняют прежнюю роль до истечения.
func (s *Users) ChangeRole(ctx context.Context, caller Caller, userID, role string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	newRole := models.Role(role)
	if !newRole.Valid() {
		return invalidInputf("role must be admin or player")
	}

	// Администратор не может понизить сам себя
	if userID == caller.UserID && newRole != models.RoleAdmin {
		return ErrForbidden
	}

	if err := s.users.UpdateRole(ctx, userID, newRole); err != nil {
		return err
	}

	s.record(ctx, caller, models.ActionChangeRole, userID, map[string]any{"role": newRole})
	return nil
}

// Delete удаляет учетную запись. Удалить самого себя нельзя.
func (s *Users) Delete(ctx context.Context, caller Caller, userID string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if userID == caller.UserID {
		return ErrForbidden
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.record(ctx, caller, models.ActionDeleteUser, userID, map[string]any{"username": user.Username})
	return nil
}
