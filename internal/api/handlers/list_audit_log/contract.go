package list_audit_log

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type AuditLogService interface {
	List(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
