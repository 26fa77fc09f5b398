package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDay возвращается при некорректном дне события
	ErrInvalidDay = errors.New("invalid event day")
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	Day           *string `json:"day,omitempty"`           // Фильтр по дню события (опционально)
	Date          *string `json:"date,omitempty"`          // Фильтр по дате YYYY-MM-DD (опционально)
	Status        *string `json:"status,omitempty"`        // Фильтр по статусу (опционально)
	Email         *string `json:"email,omitempty"`         // Фильтр по email (опционально)
	IncludeClosed bool    `json:"includeClosed,omitempty"` // Включить отклонённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Date:          r.Date,
		Email:         r.Email,
		IncludeClosed: r.IncludeClosed,
	}

	if r.Day != nil {
		day := domain.Day(*r.Day)
		if !domain.IsValidDay(day) {
			return filter, ErrInvalidDay
		}
		filter.Day = &day
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// DecideRequest административное решение по ожидающей записи
type DecideRequest struct {
	Approve bool `json:"approve"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID       string  `json:"id"`
	Day      string  `json:"day"`
	TimeSlot string  `json:"timeSlot"` // "10:00"
	Date     string  `json:"date"`     // "2026-01-16"
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Message  *string `json:"message,omitempty"`
	Status   string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:        a.ID,
		Day:       string(a.Day),
		TimeSlot:  a.TimeSlot.String(),
		Date:      a.Date,
		Name:      a.Name,
		Email:     a.Email,
		Message:   a.Message,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusRejected,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
