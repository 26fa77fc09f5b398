package get_availability

import "errors"

var (
	// ErrDayUnavailable возвращается, когда день закрыт для бронирования
	ErrDayUnavailable = errors.New("get_availability: day is not available for booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("get_availability: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
