package decide_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingAppointmentID = "отсутствует ID записи"
	msgNotFound             = "запись не найдена"
	msgNotPending           = "решение возможно только по записи в статусе pending"
	msgStoreUnavailable     = "хранилище временно недоступно, попробуйте позже"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/decide
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("PATCH /appointments/{id}/decide - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	var req models.DecideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/decide - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.service.Decide(r.Context(), appointmentID, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/decide - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrNotPending):
			h.logger.Warn("PATCH /appointments/{id}/decide - Appointment not pending: id=%s", appointmentID)
			handlers.RespondConflict(w, handlers.KindInvalidRequest, msgNotPending)

		case errors.Is(err, appointments.ErrStoreUnavailable):
			h.logger.Error("PATCH /appointments/{id}/decide - Store unavailable: id=%s, error=%v", appointmentID, err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/decide - Failed to decide: id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/decide - Decision applied: id=%s, approve=%t, status=%s",
		appointmentID, req.Approve, appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
