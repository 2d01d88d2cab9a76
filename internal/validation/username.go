package validation

import (
	"fmt"
	"regexp"

	"github.com/iudanet/starmap/internal/models"
)

// UsernamePattern определяет допустимый формат username
// Латинские буквы (a-z, A-Z), цифры (0-9), точка, дефис и нижнее подчеркивание
// Длина: 3-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
)

// ValidateUsername проверяет, что username соответствует требованиям
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), dots, dashes and underscores")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ParseRole converts s to a role; an empty string yields the player role
func ParseRole(s string) (models.Role, error) {
	if s == "" {
		return models.RolePlayer, nil
	}
	role := models.Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("role must be admin or player")
	}
	return role, nil
}

// ParseTheme converts s to a UI theme
func ParseTheme(s string) (models.Theme, error) {
	theme := models.Theme(s)
	if !theme.Valid() {
		return "", fmt.Errorf("ui_theme must be dark or light")
	}
	return theme, nil
}
