package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/slotledger"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
)

// infraErr классифицирует ошибку нижнего слоя: недоступность хранилища
// отличается от прочих внутренних ошибок кодом ответа API
func infraErr(op string, err error) error {
	if errors.Is(err, slotledger.ErrStore) || errors.Is(err, settingsService.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// UseCase use case получения доступности слотов на день события
type UseCase struct {
	ledger   SlotLedger
	settings SettingsProvider
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger SlotLedger, settings SettingsProvider, logger Logger) *UseCase {
	return &UseCase{
		ledger:   ledger,
		settings: settings,
		logger:   logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: day=%s, date=%s", req.Day, req.Date)

	// 1. Валидация входных данных
	if !domain.IsValidDay(req.Day) {
		return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, req.Day)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	// 2. Получаем политику бронирования
	cfg, err := uc.settings.GetDomain(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load settings: %v", err)
		return nil, infraErr("failed to load settings", err)
	}

	// 3. Закрытый день не имеет доступных слотов
	if !cfg.IsDayAvailable(req.Day) {
		uc.logger.Warn("GetAvailability: day %s is closed", req.Day)
		return nil, fmt.Errorf("%w: %s", ErrDayUnavailable, req.Day)
	}

	// 4. Генерируем сетку слотов и читаем занятость из леджера
	grid, err := generateTimeSlots()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(grid))
	for _, start := range grid {
		key := domain.SlotKey{Day: req.Day, TimeSlot: start, Date: req.Date}

		entry, err := uc.ledger.GetEntry(ctx, key, cfg.MaxAppointmentsPerSlot)
		if err != nil {
			uc.logger.Error("GetAvailability: ledger failure for slot %s: %v", key, err)
			return nil, infraErr("ledger failure", err)
		}

		slots = append(slots, Slot{
			TimeSlot:       start,
			AvailableSpots: entry.AvailableSpots(),
			TotalSpots:     entry.Capacity,
		})
	}

	uc.logger.Info("GetAvailability: %d slots for day=%s date=%s", len(slots), req.Day, req.Date)
	return &Response{Day: req.Day, Date: req.Date, Slots: slots}, nil
}
