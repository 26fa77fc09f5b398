package list_audit_log

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/auditlog"
)

const (
	msgInvalidLimit     = "некорректное значение limit"
	msgStoreUnavailable = "хранилище временно недоступно, попробуйте позже"
)

// AuditLogResponse ответ со списком записей журнала аудита
type AuditLogResponse struct {
	Entries []*domain.AuditEntry `json:"entries"`
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

// Handle GET /api/v1/audit
// Записи возвращаются в хронологическом порядке; limit ограничивает выборку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /audit - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	entries, err := h.service.List(r.Context(), limit)
	if err != nil {
		if errors.Is(err, auditlog.ErrStoreUnavailable) {
			h.logger.Error("GET /audit - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, handlers.KindStoreUnavailable, msgStoreUnavailable)
			return
		}
		h.logger.Error("GET /audit - Failed to list audit log: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if entries == nil {
		entries = []*domain.AuditEntry{}
	}

	h.logger.Info("GET /audit - Listed %d audit entries", len(entries))
	handlers.RespondJSON(w, http.StatusOK, AuditLogResponse{Entries: entries})
}
