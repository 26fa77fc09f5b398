package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrEncode возвращается при ошибке сериализации записи
	ErrEncode = errors.New("appointment.repository: failed to encode appointment")

	// ErrDecode возвращается при ошибке десериализации записи
	ErrDecode = errors.New("appointment.repository: failed to decode appointment")

	// ErrStore возвращается при недоступности хранилища
	ErrStore = errors.New("appointment.repository: store unavailable")
)
