package api

import "time"

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде (только по TLS)
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	Token string `json:"token"` // токен сессии, также выставляется в cookie
	User  User   `json:"user"`  // профиль вошедшего пользователя
}

// User представляет профиль пользователя без секретов
type User struct {
	CreatedAt        time.Time  `json:"created_at"`
	LastLogin        *time.Time `json:"last_login"`
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Role             string     `json:"role"`
	UITheme          string     `json:"ui_theme"`
	UIShowBaseLabels FlexBool   `json:"ui_show_base_labels"`
}

// UpdatePreferencesRequest частичное обновление настроек интерфейса
type UpdatePreferencesRequest struct {
	UITheme          *string   `json:"ui_theme"`            // dark | light
	UIShowBaseLabels *FlexBool `json:"ui_show_base_labels"` // true/false/1/0/"1"/"0"
}

// OKResponse ответ на операции без полезной нагрузки
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // тег вида ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
