package settings

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации настроек
	ErrEncode = errors.New("settings.repository: failed to encode settings")

	// ErrDecode возвращается при ошибке десериализации настроек
	ErrDecode = errors.New("settings.repository: failed to decode settings")

	// ErrStore возвращается при недоступности хранилища
	ErrStore = errors.New("settings.repository: store unavailable")
)
