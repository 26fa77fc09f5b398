package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP извлекает IP клиента из запроса
// X-Forwarded-For имеет приоритет (первый адрес в цепочке прокси)
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
