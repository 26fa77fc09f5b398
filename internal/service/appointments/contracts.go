package appointments

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SlotLedger интерфейс леджера занятости слотов
type SlotLedger interface {
	Release(ctx context.Context, key domain.SlotKey) error
}

// AuditRecorder интерфейс для записи действий в журнал аудита
type AuditRecorder interface {
	Record(ctx context.Context, action, details string, actor domain.AuditActor) *domain.AuditEntry
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, event notifyservice.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
