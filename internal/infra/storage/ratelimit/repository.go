package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// keyPrefix префикс ключей счётчиков в хранилище
const keyPrefix = "ratelimit:"

// maxRetries бюджет повторов условной записи при конфликте
const maxRetries = 3

func recordKey(clientID string) string {
	return keyPrefix + clientID
}

// Repository счётчики запросов с фиксированным окном поверх key-value хранилища
type Repository struct {
	store kvstore.Store
}

// NewRepository создает репозиторий счётчиков
func NewRepository(store kvstore.Store) *Repository {
	return &Repository{store: store}
}

// Increment атомарно инкрементирует счётчик клиента в текущем окне
// Если записи нет или окно истекло, счётчик начинается заново с windowStart = now
// Возвращает состояние счётчика после инкремента
func (r *Repository) Increment(ctx context.Context, clientID string, now time.Time, windowMinutes int) (*domain.RateLimitRecord, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		prior, record, err := r.load(ctx, clientID)
		if err != nil {
			return nil, err
		}

		if prior == nil || record.WindowExpired(now, windowMinutes) {
			record.Count = 0
			record.WindowStart = now
		}
		record.Count++

		value, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("%w: Increment %s: %v", ErrEncode, clientID, err)
		}

		err = r.store.PutIfUnchanged(ctx, recordKey(clientID), prior, value)
		if err == nil {
			record.ClientID = clientID
			return record, nil
		}
		if !errors.Is(err, kvstore.ErrWriteConflict) {
			return nil, fmt.Errorf("%w: Increment %s: %v", ErrStore, clientID, err)
		}
	}

	return nil, ErrConcurrencyExhausted
}

// Delete удаляет счётчик клиента (истёкшие окна можно вычищать фоном)
func (r *Repository) Delete(ctx context.Context, clientID string) error {
	if err := r.store.Delete(ctx, recordKey(clientID)); err != nil {
		return fmt.Errorf("%w: Delete %s: %v", ErrStore, clientID, err)
	}
	return nil
}

func (r *Repository) load(ctx context.Context, clientID string) ([]byte, *domain.RateLimitRecord, error) {
	raw, err := r.store.Get(ctx, recordKey(clientID))
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, &domain.RateLimitRecord{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load %s: %v", ErrStore, clientID, err)
	}

	var record domain.RateLimitRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, nil, fmt.Errorf("%w: load %s: %v", ErrDecode, clientID, err)
	}

	return raw, &record, nil
}
