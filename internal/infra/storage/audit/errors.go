package audit

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации записи аудита
	ErrEncode = errors.New("audit.repository: failed to encode entry")

	// ErrDecode возвращается при ошибке десериализации записи аудита
	ErrDecode = errors.New("audit.repository: failed to decode entry")

	// ErrStore возвращается при недоступности хранилища
	ErrStore = errors.New("audit.repository: store unavailable")
)
