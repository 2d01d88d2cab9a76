package service

import (
	"context"
	"log/slog"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/storage"
)

// AdminStore is the persistence needed by Admin
type AdminStore interface {
	storage.ResetStorage
	DeletePlayers(ctx context.Context) (int, error)
}

// AuditLog is the journal as seen by the admin surface
type AuditLog interface {
	audit.Recorder
	List(ctx context.Context, limit, offset int) ([]*models.AuditEntry, int, error)
	Clear(ctx context.Context, actor audit.Actor, detail any) error
}

// Admin implements the audit listing and the reset operations
type Admin struct {
	logger *slog.Logger
	store  AdminStore
	log    AuditLog
	journal
}

// NewAdmin создает сервис административных операций
func NewAdmin(logger *slog.Logger, store AdminStore, log AuditLog) *Admin {
	return &Admin{
		logger:  logger,
		store:   store,
		log:     log,
		journal: journal{logger: logger, recorder: log},
	}
}

// Logs returns a page of the audit journal newest first and the total count
func (s *Admin) Logs(ctx context.Context, caller Caller, limit, offset int) ([]*models.AuditEntry, int, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, 0, err
	}
	return s.log.List(ctx, limit, offset)
}

// ResetMap удаляет все маркеры и модули
func (s *Admin) ResetMap(ctx context.Context, caller Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	markers, modules, err := s.store.ResetMap(ctx)
	if err != nil {
		return err
	}

	s.record(ctx, caller, models.ActionResetMap, "", map[string]any{
		"markers": markers,
		"modules": modules,
	})

	s.logger.WarnContext(ctx, "map reset",
		slog.String("by", caller.Username),
		slog.Int("markers", markers),
		slog.Int("modules", modules))

	return nil
}

// ResetPlayers удаляет всех пользователей с ролью player; администраторы остаются
func (s *Admin) ResetPlayers(ctx context.Context, caller Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	removed, err := s.store.DeletePlayers(ctx)
	if err != nil {
		return err
	}

	s.record(ctx, caller, models.ActionResetPlayers, "", map[string]any{"players": removed})

	s.logger.WarnContext(ctx, "players reset",
		slog.String("by", caller.Username),
		slog.Int("players", removed))

	return nil
}

// ResetLogs очищает журнал; запись RESET_LOGS остается в нем единственной.
// Очистка и запись выполняются атомарно: при ошибке журнал не меняется.
func (s *Admin) ResetLogs(ctx context.Context, caller Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := s.log.Clear(ctx, caller.Actor(), "audit log cleared"); err != nil {
		return err
	}

	s.logger.WarnContext(ctx, "audit log reset", slog.String("by", caller.Username))

	return nil
}

// ResetAll удаляет карту, игроков и журнал и пишет RESET_ALL одной транзакцией
func (s *Admin) ResetAll(ctx context.Context, caller Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	entry, err := audit.NewEntry(caller.Actor(), models.ActionResetAll, "", "full reset")
	if err != nil {
		return err
	}

	if err := s.store.ResetAll(ctx, entry); err != nil {
		return err
	}

	s.logger.WarnContext(ctx, "full reset", slog.String("by", caller.Username))

	return nil
}
