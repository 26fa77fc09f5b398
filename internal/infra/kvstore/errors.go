package kvstore

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ отсутствует в хранилище
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrWriteConflict возвращается при неудачной условной записи (CAS)
	ErrWriteConflict = errors.New("kvstore: write conflict")

	// ErrUnavailable возвращается, когда хранилище недоступно
	ErrUnavailable = errors.New("kvstore: store unavailable")
)
