package ratelimiter

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// RateLimitRepository интерфейс репозитория счётчиков запросов
type RateLimitRepository interface {
	Increment(ctx context.Context, clientID string, now time.Time, windowMinutes int) (*domain.RateLimitRecord, error)
}

// SettingsProvider источник актуальной политики rate limiting
type SettingsProvider interface {
	GetDomain(ctx context.Context) (*domain.Settings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
