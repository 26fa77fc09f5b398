package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// generateTimeSlots генерирует сетку временных слотов дня события:
// от открытия до закрытия с фиксированным шагом
func generateTimeSlots() ([]types.TimeString, error) {
	open := types.TimeString(domain.EventOpenTime)
	close := types.TimeString(domain.EventCloseTime)

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slots = append(slots, current)

		next, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return slots, nil
}
