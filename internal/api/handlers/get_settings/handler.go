package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
)

const (
	msgStoreUnavailable = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/settings
// Отсутствующие в хранилище поля заполняются значениями по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, settingsService.ErrStoreUnavailable) {
			h.logger.Error("GET /settings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)
			return
		}
		h.logger.Error("GET /settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings - Settings retrieved")
	handlers.RespondJSON(w, http.StatusOK, settings)
}
