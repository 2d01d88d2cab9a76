package models

import "time"

// AuditAction тег действия в журнале аудита
type AuditAction string

const (
	ActionLogin          AuditAction = "LOGIN"
	ActionLogout         AuditAction = "LOGOUT"
	ActionUpdatePrefs    AuditAction = "UPDATE_PREFS"
	ActionCreateMarker   AuditAction = "CREATE_MARKER"
	ActionUpdateMarker   AuditAction = "UPDATE_MARKER"
	ActionDeleteMarker   AuditAction = "DELETE_MARKER"
	ActionCreateModule   AuditAction = "CREATE_MODULE"
	ActionUpdateModule   AuditAction = "UPDATE_MODULE"
	ActionDeleteModule   AuditAction = "DELETE_MODULE"
	ActionCreateUser     AuditAction = "CREATE_USER"
	ActionResetPassword  AuditAction = "RESET_PASSWORD"
	ActionChangeRole     AuditAction = "CHANGE_ROLE"
	ActionDeleteUser     AuditAction = "DELETE_USER"
	ActionCreateResource AuditAction = "CREATE_RESOURCE"
	ActionUpdateResource AuditAction = "UPDATE_RESOURCE"
	ActionResetMap       AuditAction = "RESET_MAP"
	ActionResetPlayers   AuditAction = "RESET_PLAYERS"
	ActionResetLogs      AuditAction = "RESET_LOGS"
	ActionResetAll       AuditAction = "RESET_ALL"
)

// AuditEntry запись журнала аудита. Записи только добавляются и никогда не изменяются.
type AuditEntry struct {
	CreatedAt time.Time   `json:"created_at"` // время записи
	UserID    *string     `json:"user_id"`    // ID пользователя, nil для системных действий
	Target    *string     `json:"target"`     // ID затронутой сущности
	Detail    *string     `json:"detail"`     // сериализованные подробности
	Username  string      `json:"username"`   // имя пользователя на момент действия
	Action    AuditAction `json:"action"`     // тег действия
	IP        string      `json:"ip"`         // IP клиента
	ID        int64       `json:"id"`         // монотонный номер записи
}
