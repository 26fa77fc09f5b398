package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

const (
	msgInvalidFilter    = "некорректные параметры фильтрации"
	msgStoreUnavailable = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Фильтры передаются query-параметрами: day, date, status, email, includeClosed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := parseFilter(r)

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, appointments.ErrStoreUnavailable):
			h.logger.Error("GET /appointments - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Listed %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFilter(r *http.Request) *models.ListAppointmentsRequest {
	q := r.URL.Query()

	req := &models.ListAppointmentsRequest{
		IncludeClosed: q.Get("includeClosed") == "true",
	}

	if day := q.Get("day"); day != "" {
		req.Day = &day
	}
	if date := q.Get("date"); date != "" {
		req.Date = &date
	}
	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if email := q.Get("email"); email != "" {
		req.Email = &email
	}

	return req
}
