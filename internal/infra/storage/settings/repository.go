package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// settingsKey единственный ключ настроек в хранилище
const settingsKey = "settings"

// Repository репозиторий настроек поверх key-value хранилища
type Repository struct {
	store kvstore.Store
}

// NewRepository создает репозиторий настроек
func NewRepository(store kvstore.Store) *Repository {
	return &Repository{store: store}
}

// Get возвращает настройки, слитые с дефолтами
// Отсутствующая запись и поля, не заданные в сохранённом JSON,
// принимают значения из domain.DefaultSettings
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	merged := domain.DefaultSettings()

	raw, err := r.store.Get(ctx, settingsKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return &merged, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrStore, err)
	}

	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}
	return &merged, nil
}

// Put сохраняет полную запись настроек
func (r *Repository) Put(ctx context.Context, s *domain.Settings) error {
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: Put: %v", ErrEncode, err)
	}

	if err := r.store.Put(ctx, settingsKey, value); err != nil {
		return fmt.Errorf("%w: Put: %v", ErrStore, err)
	}
	return nil
}
