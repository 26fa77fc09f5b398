package create_booking

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/ratelimiter"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SlotLedger интерфейс леджера занятости слотов
type SlotLedger interface {
	Reserve(ctx context.Context, key domain.SlotKey, capacity int) error
	Release(ctx context.Context, key domain.SlotKey) error
}

// SettingsProvider источник актуальной политики бронирования
type SettingsProvider interface {
	GetDomain(ctx context.Context) (*domain.Settings, error)
}

// RateLimiter интерфейс ограничителя частоты запросов
type RateLimiter interface {
	Check(ctx context.Context, clientID string) (*ratelimiter.Result, error)
}

// AuditRecorder интерфейс для записи действий в журнал аудита
type AuditRecorder interface {
	Record(ctx context.Context, action, details string, actor domain.AuditActor) *domain.AuditEntry
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, event notifyservice.Event) error
}

// MetricsObserver интерфейс для учёта результатов бронирования
type MetricsObserver interface {
	ObserveBookingOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
