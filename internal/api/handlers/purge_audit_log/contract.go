package purge_audit_log

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type AuditLogService interface {
	Purge(ctx context.Context, actor domain.AuditActor) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
