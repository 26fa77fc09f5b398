package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a visitor's slot reservation
type Appointment struct {
	ID       string
	Day      Day
	TimeSlot types.TimeString
	Date     string // YYYY-MM-DD

	// Контактные данные посетителя
	Name    string
	Email   string
	Message *string

	Status AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies slot capacity
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if the appointment reached a final state
// Terminal appointments are immutable
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusRejected || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeDecided returns true if an administrative approve/reject decision is valid
func (a *Appointment) CanBeDecided() bool {
	return a.Status == StatusPending
}

// SlotKey returns the key of the slot this appointment occupies
func (a *Appointment) SlotKey() SlotKey {
	return SlotKey{Day: a.Day, TimeSlot: a.TimeSlot, Date: a.Date}
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	Day           *Day               // Фильтр по дню события (опционально)
	Date          *string            // Фильтр по дате YYYY-MM-DD (опционально)
	Status        *AppointmentStatus // Фильтр по статусу (опционально)
	Email         *string            // Фильтр по email посетителя (опционально)
	IncludeClosed bool               // Включать ли отклонённые и отменённые записи
}
