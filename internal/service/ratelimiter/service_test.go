package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/memory"
	ratelimitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ratelimit"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type settingsStub struct {
	settings domain.Settings
}

func (s *settingsStub) GetDomain(_ context.Context) (*domain.Settings, error) {
	cfg := s.settings
	return &cfg, nil
}

type manualClock struct {
	current time.Time
}

func (c *manualClock) Now() time.Time {
	return c.current
}

func newTestService(cfg domain.Settings) (*Service, *manualClock) {
	clock := &manualClock{current: time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)}
	svc := NewService(ratelimitRepo.NewRepository(memory.New()), &settingsStub{settings: cfg}, nopLogger{})
	svc.timeProvider = clock
	return svc, clock
}

func TestService_Check_WithinLimit(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultSettings() // 5 запросов / 15 минут
	svc, _ := newTestService(cfg)

	for i := 0; i < 5; i++ {
		result, err := svc.Check(ctx, "client-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}
}

func TestService_Check_SixthDenied(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultSettings()
	svc, _ := newTestService(cfg)

	for i := 0; i < 5; i++ {
		_, err := svc.Check(ctx, "client-1")
		require.NoError(t, err)
	}

	result, err := svc.Check(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, result.RetryAfter, 15*time.Minute)
}

func TestService_Check_WindowReset(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultSettings()
	svc, clock := newTestService(cfg)

	for i := 0; i < 6; i++ {
		_, err := svc.Check(ctx, "client-1")
		require.NoError(t, err)
	}

	clock.current = clock.current.Add(15 * time.Minute)

	result, err := svc.Check(ctx, "client-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestService_Check_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultSettings()
	cfg.RateLimitingEnabled = false
	svc, _ := newTestService(cfg)

	// Без лимита любое число запросов проходит, счётчики не пишутся
	for i := 0; i < 20; i++ {
		result, err := svc.Check(ctx, "client-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestService_Check_IndependentClients(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultSettings()
	svc, _ := newTestService(cfg)

	for i := 0; i < 6; i++ {
		_, err := svc.Check(ctx, "client-1")
		require.NoError(t, err)
	}

	// Другой клиент не затронут чужим лимитом
	result, err := svc.Check(ctx, "client-2")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestService_Check_DeniedAttemptsDoNotExtendWindow(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultSettings()
	svc, clock := newTestService(cfg)

	for i := 0; i < 6; i++ {
		_, err := svc.Check(ctx, "client-1")
		require.NoError(t, err)
	}

	// Отклонённые попытки в середине окна не сдвигают его начало
	clock.current = clock.current.Add(10 * time.Minute)
	result, err := svc.Check(ctx, "client-1")
	require.NoError(t, err)
	require.False(t, result.Allowed)
	assert.LessOrEqual(t, result.RetryAfter, 5*time.Minute)

	clock.current = clock.current.Add(5 * time.Minute)
	result, err = svc.Check(ctx, "client-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
