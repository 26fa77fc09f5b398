package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgMissingParams    = "требуются query-параметры day и date"
	msgDayUnavailable   = "запись на выбранный день закрыта"
	msgInvalidInput     = "некорректные параметры запроса"
	msgStoreUnavailable = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?day=friday&date=2026-01-16
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day := q.Get("day")
	date := q.Get("date")
	if day == "" || date == "" {
		h.logger.Warn("GET /availability - Missing query params: day=%q, date=%q", day, date)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Day:  domain.Day(day),
		Date: date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrDayUnavailable):
			h.logger.Warn("GET /availability - Day unavailable: day=%s", day)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindDayUnavailable, msgDayUnavailable)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: day=%q, date=%q", day, date)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: day=%s, date=%s, error=%v", day, date, err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to get availability: day=%s, date=%s, error=%v", day, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: day=%s, date=%s, slots=%d",
		day, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
