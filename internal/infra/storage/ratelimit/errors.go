package ratelimit

import "errors"

var (
	// ErrConcurrencyExhausted возвращается при исчерпании бюджета повторов условной записи
	ErrConcurrencyExhausted = errors.New("ratelimit.repository: conditional write retry budget exhausted")

	// ErrEncode возвращается при ошибке сериализации счётчика
	ErrEncode = errors.New("ratelimit.repository: failed to encode record")

	// ErrDecode возвращается при ошибке десериализации счётчика
	ErrDecode = errors.New("ratelimit.repository: failed to decode record")

	// ErrStore возвращается при недоступности хранилища
	ErrStore = errors.New("ratelimit.repository: store unavailable")
)
