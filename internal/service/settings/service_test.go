package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/memory"
	settingsRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
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

func newTestService() (*Service, *auditSpy) {
	audit := &auditSpy{}
	svc := NewService(settingsRepo.NewRepository(memory.New()), audit, nopLogger{})
	return svc, audit
}

func TestService_Get_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxAppointmentsPerSlot, got.MaxAppointmentsPerSlot)
	assert.Equal(t, string(domain.BookingModeManual), got.BookingMode)
	assert.True(t, got.RequireApproval)
	assert.True(t, got.AvailableDays["friday"])
}

func TestService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	svc, audit := newTestService()

	got, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		MaxAppointmentsPerSlot: ptr.Ptr(4),
		AvailableDays:          map[string]*bool{"sunday": ptr.Ptr(false)},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, got.MaxAppointmentsPerSlot)
	assert.False(t, got.AvailableDays["sunday"])
	// Нетронутые поля сохраняют прежние значения
	assert.Equal(t, string(domain.BookingModeManual), got.BookingMode)
	assert.True(t, got.AvailableDays["friday"])

	require.Len(t, audit.actions, 1)
	assert.Equal(t, domain.AuditActionSettingsUpdated, audit.actions[0])

	// Повторное чтение видит сохранённое слияние
	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, again.MaxAppointmentsPerSlot)
	assert.False(t, again.AvailableDays["sunday"])
}

func TestService_Update_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{
			name: "zero slots",
			req:  &models.UpdateSettingsRequest{MaxAppointmentsPerSlot: ptr.Ptr(0)},
		},
		{
			name: "too many slots",
			req:  &models.UpdateSettingsRequest{MaxAppointmentsPerSlot: ptr.Ptr(101)},
		},
		{
			name: "unknown booking mode",
			req:  &models.UpdateSettingsRequest{BookingMode: ptr.Ptr("hybrid")},
		},
		{
			name: "unknown day",
			req:  &models.UpdateSettingsRequest{AvailableDays: map[string]*bool{"monday": ptr.Ptr(true)}},
		},
		{
			name: "zero rate limit",
			req:  &models.UpdateSettingsRequest{RateLimitMaxRequests: ptr.Ptr(0)},
		},
		{
			name: "window too long",
			req:  &models.UpdateSettingsRequest{RateLimitWindowMinutes: ptr.Ptr(2000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, audit := newTestService()

			_, err := svc.Update(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)

			// Неудачное обновление ничего не сохраняет и не аудируется
			assert.Empty(t, audit.actions)
			got, err := svc.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultMaxAppointmentsPerSlot, got.MaxAppointmentsPerSlot)
		})
	}
}

func TestService_Update_MaintenanceMode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	got, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		MaintenanceMode:    ptr.Ptr(true),
		MaintenanceMessage: ptr.Ptr("back at noon"),
	})
	require.NoError(t, err)
	assert.True(t, got.MaintenanceMode)
	assert.Equal(t, "back at noon", got.MaintenanceMessage)
}

func TestService_GetDomain(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		BookingMode:     ptr.Ptr(string(domain.BookingModeAutomatic)),
		RequireApproval: ptr.Ptr(false),
	})
	require.NoError(t, err)

	cfg, err := svc.GetDomain(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.AutoConfirm())
}
