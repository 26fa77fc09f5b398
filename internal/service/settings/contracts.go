package settings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Put(ctx context.Context, s *domain.Settings) error
}

// AuditRecorder интерфейс для записи действий в журнал аудита
type AuditRecorder interface {
	Record(ctx context.Context, action, details string, actor domain.AuditActor) *domain.AuditEntry
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
