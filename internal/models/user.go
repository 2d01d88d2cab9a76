package models

import "time"

// Role определяет уровень доступа пользователя
type Role string

const (
	// RoleAdmin администратор: управление пользователями, каталогом, журналом и сбросами
	RoleAdmin Role = "admin"
	// RolePlayer обычный игрок: работа с картой
	RolePlayer Role = "player"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePlayer
}

// Theme тема интерфейса
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether t is a supported UI theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Preferences настройки интерфейса пользователя
type Preferences struct {
	Theme          Theme `json:"ui_theme"`            // тема интерфейса (dark|light)
	ShowBaseLabels bool  `json:"ui_show_base_labels"` // показывать подписи баз на карте
}

// DefaultPreferences возвращает настройки нового пользователя
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark, ShowBaseLabels: true}
}

// PreferencesPatch частичное обновление настроек; nil означает "не менять"
type PreferencesPatch struct {
	Theme          *Theme `json:"ui_theme,omitempty"`
	ShowBaseLabels *bool  `json:"ui_show_base_labels,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PreferencesPatch) Empty() bool {
	return p.Theme == nil && p.ShowBaseLabels == nil
}

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time   `json:"created_at"`           // время создания
	LastLogin    *time.Time  `json:"last_login,omitempty"` // время последнего входа
	ID           string      `json:"id"`                   // UUID пользователя
	Username     string      `json:"username"`             // уникальный username
	PasswordHash string      `json:"-"`                    // bcrypt хеш пароля
	Role         Role        `json:"role"`                 // admin | player
	Preferences  Preferences `json:"preferences"`          // настройки интерфейса
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
