package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgMaintenanceActive    = "бронирование временно недоступно, ведутся технические работы"
	msgDayUnavailable       = "запись на выбранный день закрыта"
	msgRateLimited          = "превышен лимит запросов, попробуйте позже"
	msgDuplicateBooking     = "для этого email уже существует активная запись"
	msgSlotFull             = "в выбранном слоте не осталось свободных мест"
	msgConcurrencyExhausted = "не удалось зарезервировать место, попробуйте ещё раз"
	msgInvalidInput         = "некорректные данные запроса"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgStoreUnavailable     = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	clientID := middleware.ClientIP(r)

	// Конвертируем HTTP запрос в модель use case (с парсингом времени слота)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrMaintenanceActive):
			h.logger.Warn("POST /bookings - Maintenance mode active: client_id=%s", clientID)
			message := msgMaintenanceActive
			var maintErr *createBooking.MaintenanceError
			if errors.As(err, &maintErr) && maintErr.Message != "" {
				message = maintErr.Message
			}
			handlers.RespondServiceUnavailable(w, handlers.KindMaintenanceActive, message)

		case errors.Is(err, createBooking.ErrDayUnavailable):
			h.logger.Warn("POST /bookings - Day unavailable: day=%s, client_id=%s", req.Day, clientID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindDayUnavailable, msgDayUnavailable)

		case errors.Is(err, createBooking.ErrRateLimited):
			h.logger.Warn("POST /bookings - Rate limited: client_id=%s", clientID)
			var rlErr *createBooking.RateLimitedError
			if errors.As(err, &rlErr) && rlErr.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rlErr.RetryAfter.Seconds())))
			}
			handlers.RespondError(w, http.StatusTooManyRequests, handlers.KindRateLimited, msgRateLimited)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: email=%s, client_id=%s", req.Email, clientID)
			handlers.RespondConflict(w, handlers.KindDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: day=%s, time=%s, date=%s", req.Day, req.TimeSlot, req.Date)
			handlers.RespondConflict(w, handlers.KindSlotFull, msgSlotFull)

		case errors.Is(err, createBooking.ErrConcurrencyExhausted):
			h.logger.Warn("POST /bookings - Concurrency retry budget exhausted: day=%s, time=%s, date=%s",
				req.Day, req.TimeSlot, req.Date)
			handlers.RespondConflict(w, handlers.KindConcurrencyExhausted, msgConcurrencyExhausted)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: time=%s, client_id=%s", req.TimeSlot, clientID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%s, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: client_id=%s, error=%v", clientID, err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%s, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: id=%s, day=%s, time=%s, status=%s",
		result.ID, result.Day, result.TimeSlot, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
