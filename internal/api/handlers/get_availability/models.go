package get_availability

import (
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse доступность одного временного слота
type SlotResponse struct {
	TimeSlot       string `json:"timeSlot"` // "10:00"
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// AvailabilityResponse HTTP ответ с доступностью слотов на день
type AvailabilityResponse struct {
	Day   string         `json:"day"`
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeSlot:       slot.TimeSlot.String(),
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
		})
	}

	return &AvailabilityResponse{
		Day:   string(resp.Day),
		Date:  resp.Date,
		Slots: slots,
	}
}
