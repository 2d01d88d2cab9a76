package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/starmap/internal/crypto"
	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/session"
	"github.com/iudanet/starmap/internal/server/storage"
	"github.com/iudanet/starmap/internal/validation"
)

// LoginResult is returned on successful authentication
type LoginResult struct {
	User   *models.User
	Claims *session.Claims
	Token  string
}

// Auth implements login, logout and the current-user operations
type Auth struct {
	logger *slog.Logger
	users  storage.UserStorage
	codec  *session.Codec
	journal
}

// NewAuth создает сервис аутентификации
func NewAuth(logger *slog.Logger, users storage.UserStorage, codec *session.Codec, recorder audit.Recorder) *Auth {
	return &Auth{
		logger:  logger,
		users:   users,
		codec:   codec,
		journal: journal{logger: logger, recorder: recorder},
	}
}

// Login проверяет пароль, обновляет last_login и выдает токен сессии
func (s *Auth) Login(ctx context.Context, username, password, ip string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, invalidInputf("username and password are required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := crypto.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			s.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		}
		s.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		s.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	} else {
		user.LastLogin = &now
	}

	token, claims, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}

	caller := Caller{UserID: user.ID, Username: user.Username, Role: user.Role, IP: ip}
	s.record(ctx, caller, models.ActionLogin, user.ID, nil)

	s.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	return &LoginResult{User: user, Claims: claims, Token: token}, nil
}

// Logout отзывает токен сессии. Отзыв затрагивает только этот токен.
func (s *Auth) Logout(ctx context.Context, caller Caller, claims *session.Claims) error {
	if claims != nil {
		if err := s.codec.Revoke(ctx, claims); err != nil {
			return err
		}
	}

	s.record(ctx, caller, models.ActionLogout, caller.UserID, nil)
	return nil
}

// Me returns the stored record of the caller
func (s *Auth) Me(ctx context.Context, caller Caller) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Пользователь удален после выдачи токена
			return nil, fmt.Errorf("account no longer exists: %w", ErrUnauthenticated)
		}
		return nil, err
	}
	return user, nil
}

// UpdatePreferences применяет частичное изменение настроек интерфейса
func (s *Auth) UpdatePreferences(ctx context.Context, caller Caller, patch models.PreferencesPatch) (*models.User, error) {
	if patch.Empty() {
		return nil, invalidInputf("no preference provided")
	}
	if patch.Theme != nil {
		theme, err := validation.ParseTheme(string(*patch.Theme))
		if err != nil {
			return nil, invalidInput(err)
		}
		patch.Theme = &theme
	}

	if err := s.users.UpdatePreferences(ctx, caller.UserID, patch); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("account no longer exists: %w", ErrUnauthenticated)
		}
		return nil, err
	}

	s.record(ctx, caller, models.ActionUpdatePrefs, caller.UserID, patch)

	return s.Me(ctx, caller)
}
