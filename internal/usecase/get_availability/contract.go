package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SlotLedger интерфейс леджера занятости слотов
type SlotLedger interface {
	GetEntry(ctx context.Context, key domain.SlotKey, capacity int) (*domain.SlotLedgerEntry, error)
}

// SettingsProvider источник актуальной политики бронирования
type SettingsProvider interface {
	GetDomain(ctx context.Context) (*domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
