package slotledger

import "errors"

var (
	// ErrSlotFull возвращается, когда в слоте не осталось свободных мест
	ErrSlotFull = errors.New("slotledger.repository: slot is full")

	// ErrConcurrencyExhausted возвращается при исчерпании бюджета повторов условной записи
	ErrConcurrencyExhausted = errors.New("slotledger.repository: conditional write retry budget exhausted")

	// ErrEncode возвращается при ошибке сериализации записи леджера
	ErrEncode = errors.New("slotledger.repository: failed to encode ledger entry")

	// ErrDecode возвращается при ошибке десериализации записи леджера
	ErrDecode = errors.New("slotledger.repository: failed to decode ledger entry")

	// ErrStore возвращается при недоступности хранилища
	ErrStore = errors.New("slotledger.repository: store unavailable")
)
