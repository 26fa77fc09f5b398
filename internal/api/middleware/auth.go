package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// AdminIDHeader заголовок с идентичностью администратора
// Аутентификацию выполняет внешний шлюз; здесь заголовок лишь фиксирует
// актора для журнала аудита
const AdminIDHeader = "X-Admin-ID"

// Auth middleware для административных маршрутов
// Отклоняет запросы без заголовка X-Admin-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AdminIDHeader) == "" {
			handlers.RespondForbidden(w, "требуется заголовок X-Admin-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
