package auditlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/memory"
	auditRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/audit"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeClock выдаёт монотонно растущее время с шагом в секунду
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newTestService() *Service {
	svc := NewService(auditRepo.NewRepository(memory.New()), nopLogger{})
	svc.timeProvider = &fakeClock{current: time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)}
	return svc
}

func TestService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first := svc.Record(ctx, domain.AuditActionAppointmentCreated, "Appointment a1 created", domain.ActorSystem)
	require.NotNil(t, first)
	second := svc.Record(ctx, domain.AuditActionSettingsUpdated, "Updated fields: bookingMode", domain.ActorAdmin)
	require.NotNil(t, second)

	entries, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Сначала старые
	assert.Equal(t, domain.AuditActionAppointmentCreated, entries[0].Action)
	assert.Equal(t, domain.AuditActionSettingsUpdated, entries[1].Action)
	assert.Equal(t, domain.ActorSystem, entries[0].Actor)
	assert.True(t, entries[0].Timestamp.Before(entries[1].Timestamp))
}

func TestService_List_Limit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for i := 0; i < 5; i++ {
		require.NotNil(t, svc.Record(ctx, domain.AuditActionAppointmentCreated, "entry", domain.ActorSystem))
	}

	entries, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestService_Purge(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	svc.Record(ctx, domain.AuditActionAppointmentCreated, "one", domain.ActorSystem)
	svc.Record(ctx, domain.AuditActionAppointmentCancelled, "two", domain.ActorAdmin)

	deleted, err := svc.Purge(ctx, domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// После очистки журнал содержит единственную запись о самой очистке
	entries, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionLogPurged, entries[0].Action)
	assert.Equal(t, domain.ActorAdmin, entries[0].Actor)
	assert.Contains(t, entries[0].Details, "2")
}

func TestService_Purge_Empty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	deleted, err := svc.Purge(ctx, domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	entries, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// brokenDeleteStore роняет Delete после заданного числа успешных удалений
type brokenDeleteStore struct {
	kvstore.Store
	remaining int
}

func (s *brokenDeleteStore) Delete(ctx context.Context, key string) error {
	if s.remaining == 0 {
		return fmt.Errorf("%w: connection refused", kvstore.ErrUnavailable)
	}
	s.remaining--
	return s.Store.Delete(ctx, key)
}

func TestService_Purge_PartialFailure(t *testing.T) {
	ctx := context.Background()
	store := &brokenDeleteStore{Store: memory.New(), remaining: 1}
	svc := NewService(auditRepo.NewRepository(store), nopLogger{})
	svc.timeProvider = &fakeClock{current: time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)}

	svc.Record(ctx, domain.AuditActionAppointmentCreated, "one", domain.ActorSystem)
	svc.Record(ctx, domain.AuditActionAppointmentCancelled, "two", domain.ActorAdmin)
	svc.Record(ctx, domain.AuditActionSettingsUpdated, "three", domain.ActorAdmin)

	// Хранилище отказало посреди обхода: число уже удалённых записей
	// возвращается вместе с ошибкой недоступности
	deleted, err := svc.Purge(ctx, domain.ActorAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 1, deleted)
}

func TestNewEntryID_TimeOrdered(t *testing.T) {
	earlier := newEntryID(time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC))
	later := newEntryID(time.Date(2026, 1, 16, 12, 0, 1, 0, time.UTC))
	assert.Less(t, earlier, later)
}
