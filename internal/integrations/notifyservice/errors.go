package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")

	// ErrDisabled возвращается, когда сервис уведомлений не сконфигурирован
	ErrDisabled = errors.New("notifyservice client: notifications disabled")
)
