package api

import "time"

// CreateUserRequest запрос администратора на создание пользователя
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | player, по умолчанию player
}

// PasswordRequest запрос на смену пароля
type PasswordRequest struct {
	Password string `json:"password"`
}

// RoleRequest запрос на смену роли
type RoleRequest struct {
	Role string `json:"role"`
}

// ResourceRequest создание или изменение элемента справочника ресурсов
type ResourceRequest struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	Color     string `json:"color"`      // #rrggbb
	SortOrder int    `json:"sort_order"` // 0 означает "в конец"
}

// AuditEntry запись журнала аудита
type AuditEntry struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    *string   `json:"user_id"`
	Target    *string   `json:"target"`
	Detail    *string   `json:"detail"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	IP        string    `json:"ip"`
	ID        int64     `json:"id"`
}

// LogsResponse страница журнала аудита, новые записи первыми
type LogsResponse struct {
	Logs  []AuditEntry `json:"logs"`
	Total int          `json:"total"` // общее число записей
}
