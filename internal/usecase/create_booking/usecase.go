package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	apptStorage "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/slotledger"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifyservice"
	ratelimiterService "github.com/m04kA/SMC-ReservationService/internal/service/ratelimiter"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
)

// Метки результатов для метрик
const (
	outcomeCreated     = "created"
	outcomeMaintenance = "maintenance"
	outcomeDayClosed   = "day_unavailable"
	outcomeRateLimited = "rate_limited"
	outcomeDuplicate   = "duplicate_email"
	outcomeSlotFull    = "slot_full"
	outcomeConflict    = "concurrency_exhausted"
	outcomeInvalid     = "invalid_request"
	outcomeUnavailable = "store_unavailable"
	outcomeInternal    = "internal_error"
)

// storeUnavailable сообщает, что ошибка нижнего слоя вызвана недоступностью хранилища
func storeUnavailable(err error) bool {
	return errors.Is(err, apptStorage.ErrStore) ||
		errors.Is(err, slotledger.ErrStore) ||
		errors.Is(err, settingsService.ErrStoreUnavailable) ||
		errors.Is(err, ratelimiterService.ErrStoreUnavailable)
}

// UseCase use case создания записи — ядро движка бронирования
//
// Порядок проверок (режим обслуживания -> доступность дня -> rate limit ->
// дубликат email -> вместимость слота) — осознанное решение: дешёвые
// проверки политики идут раньше обращений к счётчикам и леджеру
type UseCase struct {
	apptRepo    AppointmentRepository
	ledger      SlotLedger
	settings    SettingsProvider
	rateLimiter RateLimiter
	audit       AuditRecorder
	notify      NotifyServiceClient
	metrics     MetricsObserver
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если сбор метрик выключен
func NewUseCase(
	apptRepo AppointmentRepository,
	ledger SlotLedger,
	settings SettingsProvider,
	rateLimiter RateLimiter,
	audit AuditRecorder,
	notify NotifyServiceClient,
	metrics MetricsObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		ledger:      ledger,
		settings:    settings,
		rateLimiter: rateLimiter,
		audit:       audit,
		notify:      notify,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, day=%s, time=%s, date=%s, email=%s",
		req.ClientID, req.Day, req.TimeSlot, req.Date, req.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(outcomeInvalid)
		return nil, err
	}
	if err := validateTimeSlot(req.TimeSlot); err != nil {
		uc.logger.Warn("CreateBooking: time slot validation failed: %v", err)
		uc.observe(outcomeInvalid)
		return nil, err
	}

	// 2. Получаем актуальную политику бронирования
	cfg, err := uc.settings.GetDomain(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load settings: %v", err)
		return nil, uc.infraErr("failed to load settings", err)
	}

	// 3. Режим обслуживания — все бронирования отклоняются
	if cfg.MaintenanceMode {
		uc.logger.Warn("CreateBooking: rejected, maintenance mode active")
		uc.observe(outcomeMaintenance)
		return nil, &MaintenanceError{Message: cfg.MaintenanceMessage}
	}

	// 4. Доступность дня; отсутствие дня в карте означает "закрыт"
	if !cfg.IsDayAvailable(req.Day) {
		uc.logger.Warn("CreateBooking: rejected, day %s is closed", req.Day)
		uc.observe(outcomeDayClosed)
		return nil, fmt.Errorf("%w: %s", ErrDayUnavailable, req.Day)
	}

	// 5. Rate limiting по идентичности клиента
	limit, err := uc.rateLimiter.Check(ctx, req.ClientID)
	if err != nil {
		uc.logger.Error("CreateBooking: rate limiter failure for client=%s: %v", req.ClientID, err)
		return nil, uc.infraErr("rate limiter failure", err)
	}
	if !limit.Allowed {
		uc.observe(outcomeRateLimited)
		return nil, &RateLimitedError{RetryAfter: limit.RetryAfter}
	}

	// 6. Проверка дубликата email среди активных записей
	if cfg.PreventDuplicateEmail {
		existing, err := uc.apptRepo.List(ctx, domain.AppointmentsFilter{Email: &req.Email})
		if err != nil {
			uc.logger.Error("CreateBooking: duplicate check failed for email=%s: %v", req.Email, err)
			return nil, uc.infraErr("duplicate check failed", err)
		}
		if len(existing) > 0 {
			uc.logger.Warn("CreateBooking: rejected, email %s already has an active appointment", req.Email)
			uc.observe(outcomeDuplicate)
			return nil, ErrDuplicateBooking
		}
	}

	// 7. Занимаем место в слоте
	slotKey := domain.SlotKey{Day: req.Day, TimeSlot: req.TimeSlot, Date: req.Date}

	if err := uc.ledger.Reserve(ctx, slotKey, cfg.MaxAppointmentsPerSlot); err != nil {
		switch {
		case errors.Is(err, slotledger.ErrSlotFull):
			uc.logger.Warn("CreateBooking: slot %s is full", slotKey)
			uc.observe(outcomeSlotFull)
			return nil, ErrSlotFull
		case errors.Is(err, slotledger.ErrConcurrencyExhausted):
			uc.logger.Warn("CreateBooking: retry budget exhausted for slot %s", slotKey)
			uc.observe(outcomeConflict)
			return nil, ErrConcurrencyExhausted
		default:
			uc.logger.Error("CreateBooking: ledger failure for slot %s: %v", slotKey, err)
			return nil, uc.infraErr("ledger failure", err)
		}
	}

	// Компенсирующее освобождение: резерв не должен пережить свою запись.
	// Любой выход без сохранённой записи возвращает место в слот
	persisted := false
	defer func() {
		if persisted {
			return
		}
		if releaseErr := uc.ledger.Release(ctx, slotKey); releaseErr != nil {
			uc.logger.Error("CreateBooking: compensating release failed for slot %s: %v", slotKey, releaseErr)
		}
	}()

	// 8. Начальный статус по политике подтверждения
	status := domain.StatusPending
	if cfg.AutoConfirm() {
		status = domain.StatusConfirmed
	}

	appt := &domain.Appointment{
		ID:       uuid.NewString(),
		Day:      req.Day,
		TimeSlot: req.TimeSlot,
		Date:     req.Date,
		Name:     req.Name,
		Email:    req.Email,
		Message:  req.Message,
		Status:   status,
	}

	// 9. Сохраняем запись
	created, err := uc.apptRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to persist appointment: %v", err)
		return nil, uc.infraErr("failed to persist appointment", err)
	}
	persisted = true

	// 10. Аудит (best-effort) и уведомление (fire-and-forget)
	uc.audit.Record(ctx, domain.AuditActionAppointmentCreated,
		fmt.Sprintf("Appointment %s (%s %s %s) for %s, status=%s",
			created.ID, created.Day, created.TimeSlot, created.Date, created.Email, created.Status),
		domain.ActorSystem)

	if err := uc.notify.Send(ctx, notifyservice.NewAppointmentEvent(notifyservice.EventBookingCreated, created)); err != nil {
		uc.logger.Warn("CreateBooking: notification failed for appointment=%s: %v", created.ID, err)
	}

	uc.observe(outcomeCreated)
	uc.logger.Info("CreateBooking: successfully created appointment id=%s, status=%s", created.ID, created.Status)

	return &Response{
		ID:        created.ID,
		Day:       created.Day,
		TimeSlot:  created.TimeSlot,
		Date:      created.Date,
		Name:      created.Name,
		Email:     created.Email,
		Message:   created.Message,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	}, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingOutcome(outcome)
	}
}

// infraErr классифицирует ошибку нижнего слоя и учитывает её в метриках
func (uc *UseCase) infraErr(op string, err error) error {
	if storeUnavailable(err) {
		uc.observe(outcomeUnavailable)
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	uc.observe(outcomeInternal)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
