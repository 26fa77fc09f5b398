package create_booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMaintenanceActive возвращается, когда включён режим обслуживания
	ErrMaintenanceActive = errors.New("create_booking: maintenance mode is active")

	// ErrDayUnavailable возвращается, когда бронирование на этот день закрыто
	ErrDayUnavailable = errors.New("create_booking: day is not available for booking")

	// ErrRateLimited возвращается при превышении лимита запросов клиента
	ErrRateLimited = errors.New("create_booking: rate limit exceeded")

	// ErrDuplicateBooking возвращается, когда у email уже есть активная запись
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking for email")

	// ErrSlotFull возвращается, когда в слоте не осталось свободных мест
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrConcurrencyExhausted возвращается при исчерпании бюджета повторов записи в леджер
	ErrConcurrencyExhausted = errors.New("create_booking: concurrency retry budget exhausted")

	// ErrInvalidTimeSlot возвращается, когда время вне сетки слотов события
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// MaintenanceError несёт настроенное оператором сообщение режима обслуживания
type MaintenanceError struct {
	Message string
}

func (e *MaintenanceError) Error() string {
	if e.Message == "" {
		return ErrMaintenanceActive.Error()
	}
	return fmt.Sprintf("%v: %s", ErrMaintenanceActive, e.Message)
}

// Unwrap позволяет errors.Is(err, ErrMaintenanceActive)
func (e *MaintenanceError) Unwrap() error {
	return ErrMaintenanceActive
}

// RateLimitedError несёт время до сброса окна лимита
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%v: retry after %s", ErrRateLimited, e.RetryAfter)
}

// Unwrap позволяет errors.Is(err, ErrRateLimited)
func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
