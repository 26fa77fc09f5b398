package purge_audit_log

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/auditlog"
)

const (
	msgStoreUnavailable = "хранилище временно недоступно, попробуйте позже"
)

// PurgeResponse ответ с количеством удалённых записей
type PurgeResponse struct {
	Deleted int `json:"deleted"`
}

type Handler struct {
	service AuditLogService
	logger  Logger
}

func NewHandler(service AuditLogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/audit
// После очистки журнал содержит одну запись о самой очистке
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Purge(r.Context(), domain.ActorAdmin)
	if err != nil {
		// Очистка поверх KV контракта не атомарна: к моменту сбоя часть
		// записей уже может быть удалена
		if errors.Is(err, auditlog.ErrStoreUnavailable) {
			h.logger.Error("DELETE /audit - Store unavailable after %d deletions: %v", deleted, err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)
			return
		}
		h.logger.Error("DELETE /audit - Failed to purge audit log after %d deletions: %v", deleted, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /audit - Audit log purged: deleted=%d", deleted)
	handlers.RespondJSON(w, http.StatusOK, PurgeResponse{Deleted: deleted})
}
