package appointments

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/memory"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	slotledgerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slotledger"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type auditSpy struct {
	actions []string
}

func (a *auditSpy) Record(_ context.Context, action, details string, actor domain.AuditActor) *domain.AuditEntry {
	a.actions = append(a.actions, action)
	return &domain.AuditEntry{Action: action, Details: details, Actor: actor}
}

type notifySpy struct {
	events []notifyservice.Event
}

func (n *notifySpy) Send(_ context.Context, event notifyservice.Event) error {
	n.events = append(n.events, event)
	return nil
}

type fixture struct {
	svc    *Service
	repo   *appointmentRepo.Repository
	ledger *slotledgerRepo.Repository
	audit  *auditSpy
	notify *notifySpy
}

func newFixture() *fixture {
	store := memory.New()
	repo := appointmentRepo.NewRepository(store)
	ledger := slotledgerRepo.NewRepository(store)
	audit := &auditSpy{}
	notify := &notifySpy{}

	return &fixture{
		svc:    NewService(repo, ledger, audit, notify, nopLogger{}),
		repo:   repo,
		ledger: ledger,
		audit:  audit,
		notify: notify,
	}
}

// seed создает запись и занимает для неё место в леджере
func (f *fixture) seed(t *testing.T, id string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()

	appt := &domain.Appointment{
		ID:       id,
		Day:      domain.DayFriday,
		TimeSlot: "10:00",
		Date:     "2026-01-16",
		Name:     "Visitor",
		Email:    id + "@example.com",
		Status:   status,
	}

	_, err := f.repo.Create(context.Background(), appt)
	require.NoError(t, err)

	if appt.IsActive() {
		require.NoError(t, f.ledger.Reserve(context.Background(), appt.SlotKey(), 10))
	}
	return appt
}

func (f *fixture) occupancy(t *testing.T, appt *domain.Appointment) int {
	t.Helper()

	entry, err := f.ledger.GetEntry(context.Background(), appt.SlotKey(), 10)
	require.NoError(t, err)
	return entry.Occupancy
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "a1", domain.StatusPending)

	got, err := f.svc.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, string(domain.StatusPending), got.Status)

	_, err = f.svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "a1", domain.StatusPending)
	f.seed(t, "a2", domain.StatusCancelled)

	got, err := f.svc.List(ctx, &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	assert.Len(t, got.Appointments, 1)

	got, err = f.svc.List(ctx, &models.ListAppointmentsRequest{IncludeClosed: true})
	require.NoError(t, err)
	assert.Len(t, got.Appointments, 2)
}

func TestService_List_InvalidFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	day := "monday"
	_, err := f.svc.List(ctx, &models.ListAppointmentsRequest{Day: &day})
	assert.ErrorIs(t, err, ErrInvalidInput)

	status := "archived"
	_, err = f.svc.List(ctx, &models.ListAppointmentsRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	appt := f.seed(t, "a1", domain.StatusConfirmed)
	require.Equal(t, 1, f.occupancy(t, appt))

	got, err := f.svc.Cancel(ctx, "a1", domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	// Место освобождено, действие аудировано и отправлено уведомление
	assert.Equal(t, 0, f.occupancy(t, appt))
	require.Len(t, f.audit.actions, 1)
	assert.Equal(t, domain.AuditActionAppointmentCancelled, f.audit.actions[0])
	require.Len(t, f.notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingCancelled, f.notify.events[0].Type)
}

func TestService_Cancel_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	appt := f.seed(t, "a1", domain.StatusConfirmed)

	_, err := f.svc.Cancel(ctx, "a1", domain.ActorAdmin)
	require.NoError(t, err)

	// Повторная отмена возвращает текущее состояние без побочных эффектов
	got, err := f.svc.Cancel(ctx, "a1", domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	assert.Equal(t, 0, f.occupancy(t, appt))
	assert.Len(t, f.audit.actions, 1)
	assert.Len(t, f.notify.events, 1)
}

func TestService_Cancel_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.Cancel(ctx, "missing", domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Decide_Approve(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	appt := f.seed(t, "a1", domain.StatusPending)

	got, err := f.svc.Decide(ctx, "a1", true)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)

	// Подтверждение не освобождает место
	assert.Equal(t, 1, f.occupancy(t, appt))
	require.Len(t, f.audit.actions, 1)
	assert.Equal(t, domain.AuditActionAppointmentApproved, f.audit.actions[0])
	require.Len(t, f.notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingDecided, f.notify.events[0].Type)
}

func TestService_Decide_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	appt := f.seed(t, "a1", domain.StatusPending)

	got, err := f.svc.Decide(ctx, "a1", false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), got.Status)

	// Отклонение освобождает место для других посетителей
	assert.Equal(t, 0, f.occupancy(t, appt))
	require.Len(t, f.audit.actions, 1)
	assert.Equal(t, domain.AuditActionAppointmentRejected, f.audit.actions[0])
}

func TestService_Decide_NotPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "confirmed", domain.StatusConfirmed)
	f.seed(t, "cancelled", domain.StatusCancelled)

	_, err := f.svc.Decide(ctx, "confirmed", true)
	assert.ErrorIs(t, err, ErrNotPending)

	_, err = f.svc.Decide(ctx, "cancelled", false)
	assert.ErrorIs(t, err, ErrNotPending)

	_, err = f.svc.Decide(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

// downStore имитирует недоступное key-value хранилище
type downStore struct{}

func (downStore) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, fmt.Errorf("%w: connection refused", kvstore.ErrUnavailable)
}

func (downStore) Put(_ context.Context, _ string, _ []byte) error {
	return fmt.Errorf("%w: connection refused", kvstore.ErrUnavailable)
}

func (downStore) Delete(_ context.Context, _ string) error {
	return fmt.Errorf("%w: connection refused", kvstore.ErrUnavailable)
}

func (downStore) List(_ context.Context, _ string) ([]string, error) {
	return nil, fmt.Errorf("%w: connection refused", kvstore.ErrUnavailable)
}

func (downStore) PutIfUnchanged(_ context.Context, _ string, _, _ []byte) error {
	return fmt.Errorf("%w: connection refused", kvstore.ErrUnavailable)
}

func TestService_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	repo := appointmentRepo.NewRepository(downStore{})
	ledger := slotledgerRepo.NewRepository(downStore{})
	svc := NewService(repo, ledger, &auditSpy{}, &notifySpy{}, nopLogger{})

	_, err := svc.GetByID(ctx, "a1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInternal)

	_, err = svc.List(ctx, &models.ListAppointmentsRequest{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.Cancel(ctx, "a1", domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
