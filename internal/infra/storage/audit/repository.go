package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// keyPrefix префикс ключей журнала аудита в хранилище
const keyPrefix = "audit:"

func entryKey(id string) string {
	return keyPrefix + id
}

// Repository append-only журнал аудита поверх key-value хранилища
// Записи никогда не обновляются; удаление возможно только через PurgeAll
type Repository struct {
	store kvstore.Store
}

// NewRepository создает репозиторий журнала аудита
func NewRepository(store kvstore.Store) *Repository {
	return &Repository{store: store}
}

// Append добавляет запись в журнал
func (r *Repository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: Append - marshal: %v", ErrEncode, err)
	}

	if err := r.store.Put(ctx, entryKey(entry.ID), value); err != nil {
		return fmt.Errorf("%w: Append - put: %v", ErrStore, err)
	}
	return nil
}

// List возвращает записи журнала в порядке хранения ключей
// limit <= 0 означает без ограничения
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	keys, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: List - list keys: %v", ErrStore, err)
	}

	entries := make([]*domain.AuditEntry, 0, len(keys))
	for _, key := range keys {
		if limit > 0 && len(entries) >= limit {
			break
		}

		value, err := r.store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: List - get %s: %v", ErrStore, key, err)
		}

		var entry domain.AuditEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return nil, fmt.Errorf("%w: List - unmarshal %s: %v", ErrDecode, key, err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// PurgeAll удаляет все записи журнала и возвращает число удалённых
func (r *Repository) PurgeAll(ctx context.Context) (int, error) {
	keys, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeAll - list keys: %v", ErrStore, err)
	}

	deleted := 0
	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			return deleted, fmt.Errorf("%w: PurgeAll - delete %s: %v", ErrStore, key, err)
		}
		deleted++
	}

	return deleted, nil
}
