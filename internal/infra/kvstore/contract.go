package kvstore

import "context"

// Store абстрактный контракт key-value хранилища
// Значения — непрозрачные байтовые строки (JSON на уровне репозиториев)
type Store interface {
	// Get возвращает значение по ключу или ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put записывает значение по ключу, перезаписывая существующее
	Put(ctx context.Context, key string, value []byte) error

	// Delete удаляет ключ; отсутствие ключа не является ошибкой
	Delete(ctx context.Context, key string) error

	// List возвращает все ключи с указанным префиксом
	List(ctx context.Context, prefix string) ([]string, error)

	// PutIfUnchanged записывает значение только если текущее значение ключа
	// совпадает с expected (compare-and-swap). expected == nil означает,
	// что ключ должен отсутствовать. При несовпадении возвращает ErrWriteConflict
	PutIfUnchanged(ctx context.Context, key string, expected, value []byte) error
}
