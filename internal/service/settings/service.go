package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
)

// wrapRepoErr классифицирует ошибку репозитория: недоступность хранилища
// отличается от прочих внутренних ошибок кодом ответа API
func wrapRepoErr(op string, err error) error {
	if errors.Is(err, settingsRepo.ErrStore) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// Service сервис для работы с настройками бронирования
type Service struct {
	repo   SettingsRepository
	audit  AuditRecorder
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, audit AuditRecorder, logger Logger) *Service {
	return &Service{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

// Get возвращает текущие настройки (дефолты, слитые с сохранёнными)
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, wrapRepoErr("Get - repository error", err)
	}

	return models.FromDomainSettings(current), nil
}

// GetDomain возвращает настройки как domain модель
// Используется другими компонентами движка как единственный путь чтения политики
func (s *Service) GetDomain(ctx context.Context) (*domain.Settings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, wrapRepoErr("GetDomain - repository error", err)
	}
	return current, nil
}

// Update частично обновляет настройки и возвращает итоговую полную запись
// Валидация выполняется над результатом слияния: при ошибке валидации
// ничего не сохраняется. Каждое успешное обновление аудируется
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	changed := req.ChangedFields()
	s.logger.Info("Update: updating settings, fields=%s", strings.Join(changed, ","))

	// 1. Получаем текущие настройки
	current, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, wrapRepoErr("Update - repository error", err)
	}

	// 2. Применяем изменения к копии и валидируем результат
	merged := *current
	merged.AvailableDays = make(map[domain.Day]bool, len(current.AvailableDays))
	for day, open := range current.AvailableDays {
		merged.AvailableDays[day] = open
	}
	req.ApplyToSettings(&merged)

	if err := validateSettings(&merged); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем результат слияния
	if err := s.repo.Put(ctx, &merged); err != nil {
		s.logger.Error("Update: failed to persist settings: %v", err)
		return nil, wrapRepoErr("Update - persist error", err)
	}

	// 4. Аудируем изменение (best-effort, сбой не влияет на результат)
	s.audit.Record(ctx, domain.AuditActionSettingsUpdated,
		fmt.Sprintf("Updated fields: %s", strings.Join(changed, ", ")), domain.ActorAdmin)

	s.logger.Info("Update: settings updated successfully")
	return models.FromDomainSettings(&merged), nil
}

// validateSettings проверяет бизнес-ограничения настроек
func validateSettings(s *domain.Settings) error {
	if s.MaxAppointmentsPerSlot < domain.MinAppointmentsPerSlot || s.MaxAppointmentsPerSlot > domain.MaxAppointmentsPerSlot {
		return fmt.Errorf("%w: maxAppointmentsPerSlot must be between %d and %d",
			ErrInvalidSettings, domain.MinAppointmentsPerSlot, domain.MaxAppointmentsPerSlot)
	}

	if s.BookingMode != domain.BookingModeManual && s.BookingMode != domain.BookingModeAutomatic {
		return fmt.Errorf("%w: bookingMode must be %q or %q",
			ErrInvalidSettings, domain.BookingModeManual, domain.BookingModeAutomatic)
	}

	for day := range s.AvailableDays {
		if !domain.IsValidDay(day) {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSettings, day)
		}
	}

	if s.RateLimitMaxRequests < domain.MinRateLimitRequests || s.RateLimitMaxRequests > domain.MaxRateLimitRequests {
		return fmt.Errorf("%w: rateLimitMaxRequests must be between %d and %d",
			ErrInvalidSettings, domain.MinRateLimitRequests, domain.MaxRateLimitRequests)
	}

	if s.RateLimitWindowMinutes < domain.MinRateLimitWindow || s.RateLimitWindowMinutes > domain.MaxRateLimitWindow {
		return fmt.Errorf("%w: rateLimitWindowMinutes must be between %d and %d",
			ErrInvalidSettings, domain.MinRateLimitWindow, domain.MaxRateLimitWindow)
	}

	return nil
}
