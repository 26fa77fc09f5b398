package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Day      string  `json:"day"`      // "friday"
	TimeSlot string  `json:"timeSlot"` // "10:00"
	Date     string  `json:"date"`     // "2026-01-16"
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Message  *string `json:"message,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        string  `json:"id"`
	Day       string  `json:"day"`
	TimeSlot  string  `json:"timeSlot"`
	Date      string  `json:"date"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Message   *string `json:"message,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// clientID — идентичность клиента для rate limiting
func (r *CreateBookingRequest) ToUseCaseRequest(clientID string) (*createBooking.Request, error) {
	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Day:      domain.Day(r.Day),
		TimeSlot: timeSlot,
		Date:     r.Date,
		Name:     r.Name,
		Email:    r.Email,
		Message:  r.Message,
		ClientID: clientID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		Day:       string(resp.Day),
		TimeSlot:  resp.TimeSlot.String(),
		Date:      resp.Date,
		Name:      resp.Name,
		Email:     resp.Email,
		Message:   resp.Message,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
