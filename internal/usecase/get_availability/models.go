package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на получение доступности слотов
type Request struct {
	Day  domain.Day // День события
	Date string     // Дата в формате YYYY-MM-DD
}

// Slot доступность одного временного слота
type Slot struct {
	TimeSlot       types.TimeString // Время начала слота
	AvailableSpots int              // Свободных мест
	TotalSpots     int              // Всего мест
}

// Response модель ответа со слотами на день
type Response struct {
	Day   domain.Day
	Date  string
	Slots []Slot
}
