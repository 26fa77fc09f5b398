package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidDay(req.Day) {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidInput, req.Day)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}
	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long (max %d)", ErrInvalidInput, domain.MaxNameLength)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxEmailLength || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if req.Message != nil && len(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is too long (max %d)", ErrInvalidInput, domain.MaxMessageLength)
	}

	if req.ClientID == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	return nil
}

// validateTimeSlot проверяет, что время попадает в сетку слотов события:
// от открытия до закрытия с шагом domain.SlotDurationMinutes
func validateTimeSlot(slot types.TimeString) error {
	open := types.TimeString(domain.EventOpenTime)
	close := types.TimeString(domain.EventCloseTime)

	if slot.IsBefore(open) || !slot.IsBefore(close) {
		return fmt.Errorf("%w: %s is outside event hours %s-%s", ErrInvalidTimeSlot, slot, open, close)
	}

	current := open
	for current.IsBefore(close) {
		if current == slot {
			return nil
		}
		next, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		current = next
	}

	return fmt.Errorf("%w: %s is not aligned to the %d-minute slot grid", ErrInvalidTimeSlot, slot, domain.SlotDurationMinutes)
}
