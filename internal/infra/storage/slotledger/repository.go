package slotledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// keyPrefix префикс ключей леджера в хранилище
const keyPrefix = "slot:"

// maxRetries бюджет повторов условной записи при конфликте
const maxRetries = 3

func slotKey(key domain.SlotKey) string {
	return keyPrefix + key.String()
}

// Repository леджер занятости слотов поверх key-value хранилища
// Вместимость контролируется оптимистичной блокировкой: читаем текущее
// значение, проверяем лимит локально и записываем обратно условной записью.
// Конфликт записи означает параллельное бронирование того же слота —
// повторяем с ограниченным числом попыток
type Repository struct {
	store kvstore.Store
}

// NewRepository создает леджер слотов
func NewRepository(store kvstore.Store) *Repository {
	return &Repository{store: store}
}

// Reserve занимает одно место в слоте
// capacity — актуальный лимит из настроек; применяется к этой и последующим
// попыткам, уже занятые места при снижении лимита не вытесняются
func (r *Repository) Reserve(ctx context.Context, key domain.SlotKey, capacity int) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		prior, entry, err := r.load(ctx, key)
		if err != nil {
			return err
		}

		if entry.Occupancy+1 > capacity {
			return ErrSlotFull
		}

		entry.Occupancy++
		entry.Capacity = capacity

		err = r.compareAndPut(ctx, key, prior, entry)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvstore.ErrWriteConflict) {
			return err
		}
		// Конфликт — кто-то успел записать раньше, перечитываем и повторяем
	}

	return ErrConcurrencyExhausted
}

// Release освобождает одно место в слоте
// Идемпотентна: занятость не опускается ниже нуля, отсутствующий слот — no-op
func (r *Repository) Release(ctx context.Context, key domain.SlotKey) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		prior, entry, err := r.load(ctx, key)
		if err != nil {
			return err
		}

		if prior == nil || entry.Occupancy == 0 {
			return nil
		}

		entry.Occupancy--

		err = r.compareAndPut(ctx, key, prior, entry)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvstore.ErrWriteConflict) {
			return err
		}
	}

	return ErrConcurrencyExhausted
}

// GetEntry возвращает текущее состояние слота
// Для слота без единого бронирования возвращает нулевую занятость.
// Читающая сторона всегда видит актуальный лимит из настроек, а не лимит,
// зафиксированный в записи последним Reserve
func (r *Repository) GetEntry(ctx context.Context, key domain.SlotKey, capacity int) (*domain.SlotLedgerEntry, error) {
	_, entry, err := r.load(ctx, key)
	if err != nil {
		return nil, err
	}
	entry.Capacity = capacity
	return entry, nil
}

// load читает запись леджера вместе с её сырым представлением для CAS
// Отсутствующий ключ возвращается как (nil, пустая запись, nil)
func (r *Repository) load(ctx context.Context, key domain.SlotKey) ([]byte, *domain.SlotLedgerEntry, error) {
	raw, err := r.store.Get(ctx, slotKey(key))
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, &domain.SlotLedgerEntry{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load %s: %v", ErrStore, key, err)
	}

	var entry domain.SlotLedgerEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, nil, fmt.Errorf("%w: load %s: %v", ErrDecode, key, err)
	}

	return raw, &entry, nil
}

// compareAndPut записывает обновлённую запись условной записью
func (r *Repository) compareAndPut(ctx context.Context, key domain.SlotKey, prior []byte, entry *domain.SlotLedgerEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: compareAndPut %s: %v", ErrEncode, key, err)
	}

	err = r.store.PutIfUnchanged(ctx, slotKey(key), prior, value)
	if err == nil || errors.Is(err, kvstore.ErrWriteConflict) {
		return err
	}
	return fmt.Errorf("%w: compareAndPut %s: %v", ErrStore, key, err)
}
