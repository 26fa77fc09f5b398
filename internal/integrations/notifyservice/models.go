package notifyservice

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// EventType тип события для сервиса уведомлений
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingDecided   EventType = "booking.decided"
)

// Event событие, отправляемое в сервис уведомлений
// Движок не знает, как уведомление доставляется (почта, календарь);
// это забота внешнего сервиса
type Event struct {
	Type          EventType `json:"type"`
	AppointmentID string    `json:"appointmentId"`
	Day           string    `json:"day"`
	TimeSlot      string    `json:"timeSlot"`
	Date          string    `json:"date"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewAppointmentEvent собирает событие из записи
func NewAppointmentEvent(eventType EventType, appt *domain.Appointment) Event {
	return Event{
		Type:          eventType,
		AppointmentID: appt.ID,
		Day:           string(appt.Day),
		TimeSlot:      appt.TimeSlot.String(),
		Date:          appt.Date,
		Name:          appt.Name,
		Email:         appt.Email,
		Status:        string(appt.Status),
		OccurredAt:    time.Now().UTC(),
	}
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
