package settings

import "errors"

var (
	// ErrInvalidSettings возвращается при некорректных значениях настроек
	ErrInvalidSettings = errors.New("settings: invalid settings")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("settings: store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
