package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments"
)

const (
	msgMissingAppointmentID = "отсутствует ID записи"
	msgNotFound             = "запись не найдена"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
// Отмена идемпотентна: повторный запрос по завершённой записи возвращает её
// текущее состояние без изменений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	appointment, err := h.service.Cancel(r.Context(), appointmentID, domain.ActorAdmin)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrStoreUnavailable):
			h.logger.Error("PATCH /appointments/{id}/cancel - Store unavailable: id=%s, error=%v", appointmentID, err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: id=%s, status=%s",
		appointmentID, appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
