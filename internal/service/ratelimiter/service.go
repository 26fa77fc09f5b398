package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	ratelimitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ratelimit"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
)

// Result результат проверки лимита запросов
type Result struct {
	Allowed    bool
	RetryAfter time.Duration // Сколько ждать до сброса окна (для Denied)
}

// Service ограничитель частоты запросов с фиксированным окном
// Это средство сдерживания злоупотреблений, а не граница безопасности:
// используется wall-clock время без распределённой синхронизации часов
type Service struct {
	repo         RateLimitRepository
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр ограничителя
func NewService(repo RateLimitRepository, settings SettingsProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Check проверяет и учитывает запрос клиента
// Счётчик инкрементируется и при отказе, чтобы повторные попытки
// не продлевали клиенту окно
func (s *Service) Check(ctx context.Context, clientID string) (*Result, error) {
	cfg, err := s.settings.GetDomain(ctx)
	if err != nil {
		s.logger.Error("Check: failed to load settings: %v", err)
		if errors.Is(err, settingsService.ErrStoreUnavailable) {
			return nil, fmt.Errorf("%w: Check - settings error: %v", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("%w: Check - settings error: %v", ErrInternal, err)
	}

	// Лимитирование выключено — пропускаем без записи
	if !cfg.RateLimitingEnabled {
		return &Result{Allowed: true}, nil
	}

	now := s.timeProvider.Now()

	record, err := s.repo.Increment(ctx, clientID, now, cfg.RateLimitWindowMinutes)
	if err != nil {
		s.logger.Error("Check: failed to increment counter for client=%s: %v", clientID, err)
		if errors.Is(err, ratelimitRepo.ErrStore) {
			return nil, fmt.Errorf("%w: Check - repository error: %v", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	if record.Count > cfg.RateLimitMaxRequests {
		retryAfter := record.RetryAfter(now, cfg.RateLimitWindowMinutes)
		s.logger.Warn("Check: client=%s denied, %d/%d requests in window, retry after %s",
			clientID, record.Count, cfg.RateLimitMaxRequests, retryAfter)
		return &Result{Allowed: false, RetryAfter: retryAfter}, nil
	}

	return &Result{Allowed: true}, nil
}
