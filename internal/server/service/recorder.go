package service

import (
	"context"
	"log/slog"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
)

// journal пишет запись аудита после коммита.
// Ошибка записи логируется и не возвращается: мутация уже зафиксирована.
type journal struct {
	logger   *slog.Logger
	recorder audit.Recorder
}

func (j journal) record(ctx context.Context, caller Caller, action models.AuditAction, target string, detail any) {
	if err := j.recorder.Record(ctx, caller.Actor(), action, target, detail); err != nil {
		j.logger.ErrorContext(ctx, "failed to record audit entry",
			slog.String("action", string(action)),
			slog.String("target", target),
			slog.Any("error", err))
	}
}
