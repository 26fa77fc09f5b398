package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse стандартное тело ошибки API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Машиночитаемые коды ошибок
const (
	KindInvalidRequest       = "invalid_request"
	KindNotFound             = "not_found"
	KindForbidden            = "forbidden"
	KindMaintenanceActive    = "maintenance_active"
	KindDayUnavailable       = "day_unavailable"
	KindRateLimited          = "rate_limited"
	KindDuplicateBooking     = "duplicate_booking"
	KindSlotFull             = "slot_full"
	KindConcurrencyExhausted = "concurrency_exhausted"
	KindInvalidSettings      = "invalid_settings"
	KindStoreUnavailable     = "store_unavailable"
	KindInternal             = "internal_error"
)

// DecodeJSON декодирует JSON тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError пишет стандартное тело ошибки
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// RespondBadRequest пишет ошибку 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindInvalidRequest, message)
}

// RespondNotFound пишет ошибку 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondForbidden пишет ошибку 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindForbidden, message)
}

// RespondConflict пишет ошибку 409 с указанным кодом
func RespondConflict(w http.ResponseWriter, kind, message string) {
	RespondError(w, http.StatusConflict, kind, message)
}

// RespondServiceUnavailable пишет ошибку 503 с указанным кодом
func RespondServiceUnavailable(w http.ResponseWriter, kind, message string) {
	RespondError(w, http.StatusServiceUnavailable, kind, message)
}

// RespondInternalError пишет ошибку 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, "внутренняя ошибка сервиса")
}
