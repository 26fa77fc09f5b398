package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// appointmentRecord сериализуемое представление записи в хранилище
type appointmentRecord struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	TimeSlot  string    `json:"timeSlot"`
	Date      string    `json:"date"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   *string   `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository репозиторий записей поверх key-value хранилища
type Repository struct {
	store Store
}

// NewRepository создает репозиторий записей
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Create сохраняет новую запись, проставляя created_at / updated_at
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	value, err := json.Marshal(toRecord(appt))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal: %v", ErrEncode, err)
	}

	if err := r.store.Put(ctx, appointmentKey(appt.ID), value); err != nil {
		return nil, fmt.Errorf("%w: Create - put: %v", ErrStore, err)
	}

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	value, err := r.store.Get(ctx, appointmentKey(id))
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - get: %v", ErrStore, err)
	}

	return decode(value)
}

// Update перезаписывает существующую запись, обновляя updated_at
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if _, err := r.GetByID(ctx, appt.ID); err != nil {
		return nil, err
	}

	appt.UpdatedAt = time.Now().UTC()

	value, err := json.Marshal(toRecord(appt))
	if err != nil {
		return nil, fmt.Errorf("%w: Update - marshal: %v", ErrEncode, err)
	}

	if err := r.store.Put(ctx, appointmentKey(appt.ID), value); err != nil {
		return nil, fmt.Errorf("%w: Update - put: %v", ErrStore, err)
	}

	return appt, nil
}

// List получает записи с гибкой фильтрацией
// Результат отсортирован по времени создания (сначала новые)
//
// Примеры использования:
//
// 1. Все активные записи:
//    filter := domain.AppointmentsFilter{}
//
// 2. Записи на конкретный день события:
//    day := domain.DayFriday
//    filter := domain.AppointmentsFilter{Day: &day}
//
// 3. Активные записи по email (проверка дубликатов):
//    filter := domain.AppointmentsFilter{Email: &email}
//
// 4. Все записи, включая отклонённые и отменённые:
//    filter := domain.AppointmentsFilter{IncludeClosed: true}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	keys, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: List - list keys: %v", ErrStore, err)
	}

	appointments := make([]*domain.Appointment, 0, len(keys))
	for _, key := range keys {
		value, err := r.store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			// Ключ удалён между List и Get, пропускаем
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: List - get %s: %v", ErrStore, key, err)
		}

		appt, err := decode(value)
		if err != nil {
			return nil, err
		}

		if matchesFilter(appt, filter) {
			appointments = append(appointments, appt)
		}
	}

	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].CreatedAt.After(appointments[j].CreatedAt)
	})

	return appointments, nil
}

// matchesFilter проверяет запись на соответствие фильтру
func matchesFilter(appt *domain.Appointment, filter domain.AppointmentsFilter) bool {
	if filter.Day != nil && appt.Day != *filter.Day {
		return false
	}
	if filter.Date != nil && appt.Date != *filter.Date {
		return false
	}
	if filter.Status != nil && appt.Status != *filter.Status {
		return false
	}
	if filter.Email != nil && !strings.EqualFold(appt.Email, *filter.Email) {
		return false
	}
	if filter.Status == nil && !filter.IncludeClosed && appt.IsTerminal() {
		return false
	}
	return true
}

func toRecord(appt *domain.Appointment) appointmentRecord {
	return appointmentRecord{
		ID:        appt.ID,
		Day:       string(appt.Day),
		TimeSlot:  appt.TimeSlot.String(),
		Date:      appt.Date,
		Name:      appt.Name,
		Email:     appt.Email,
		Message:   appt.Message,
		Status:    string(appt.Status),
		CreatedAt: appt.CreatedAt,
		UpdatedAt: appt.UpdatedAt,
	}
}

func decode(value []byte) (*domain.Appointment, error) {
	var rec appointmentRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrDecode, err)
	}

	return &domain.Appointment{
		ID:        rec.ID,
		Day:       domain.Day(rec.Day),
		TimeSlot:  types.TimeString(rec.TimeSlot),
		Date:      rec.Date,
		Name:      rec.Name,
		Email:     rec.Email,
		Message:   rec.Message,
		Status:    domain.AppointmentStatus(rec.Status),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
