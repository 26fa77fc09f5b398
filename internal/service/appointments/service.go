package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	apptRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	slotledgerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slotledger"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/appointments/models"
)

// wrapInfraErr классифицирует ошибку инфраструктуры: недоступность хранилища
// отличается от прочих внутренних ошибок кодом ответа API
func wrapInfraErr(op string, err error) error {
	if errors.Is(err, apptRepo.ErrStore) || errors.Is(err, slotledgerRepo.ErrStore) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// Service сервис для работы с существующими записями
// Создание записей выполняет usecase create_booking; здесь — чтение,
// отмена и административные решения
type Service struct {
	apptRepo AppointmentRepository
	ledger   SlotLedger
	audit    AuditRecorder
	notify   NotifyServiceClient
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	ledger SlotLedger,
	audit AuditRecorder,
	notify NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		apptRepo: apptRepo,
		ledger:   ledger,
		audit:    audit,
		notify:   notify,
		logger:   logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, wrapInfraErr("GetByID - repository error", err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.apptRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, wrapInfraErr("List - repository error", err)
	}

	s.logger.Info("List: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Идемпотентна: отмена записи в терминальном статусе возвращает её текущее
// состояние и не освобождает место повторно
func (s *Service) Cancel(ctx context.Context, id string, actor domain.AuditActor) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, wrapInfraErr("Cancel - repository error", err)
	}

	// Запись уже в терминальном статусе — повторная отмена no-op
	if appt.IsTerminal() {
		s.logger.Info("Cancel: appointment id=%s already terminal (status=%s)", id, appt.Status)
		return models.FromDomainAppointment(appt), nil
	}

	appt.Status = domain.StatusCancelled

	// Освобождаем место в слоте до записи статуса: при сбое после освобождения
	// повторный вызов увидит всё ещё активную запись, а Release идемпотентен
	// и не уводит занятость ниже нуля
	if err := s.ledger.Release(ctx, appt.SlotKey()); err != nil {
		s.logger.Error("Cancel: failed to release slot %s: %v", appt.SlotKey(), err)
		return nil, wrapInfraErr("Cancel - ledger error", err)
	}

	updated, err := s.apptRepo.Update(ctx, appt)
	if err != nil {
		s.logger.Error("Cancel: failed to persist appointment id=%s: %v", id, err)
		return nil, wrapInfraErr("Cancel - persist error", err)
	}

	s.audit.Record(ctx, domain.AuditActionAppointmentCancelled,
		fmt.Sprintf("Appointment %s (%s %s %s) cancelled", id, appt.Day, appt.TimeSlot, appt.Date), actor)

	if err := s.notify.Send(ctx, notifyservice.NewAppointmentEvent(notifyservice.EventBookingCancelled, updated)); err != nil {
		// Уведомления — fire-and-forget, ошибка не влияет на результат
		s.logger.Warn("Cancel: notification failed for appointment id=%s: %v", id, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(updated), nil
}

// Decide принимает административное решение по ожидающей записи
// approve = true подтверждает запись; approve = false отклоняет её
// и освобождает место в слоте для других посетителей
func (s *Service) Decide(ctx context.Context, id string, approve bool) (*models.AppointmentResponse, error) {
	s.logger.Info("Decide: appointment id=%s, approve=%t", id, approve)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Decide: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Decide: repository error for appointment id=%s: %v", id, err)
		return nil, wrapInfraErr("Decide - repository error", err)
	}

	if !appt.CanBeDecided() {
		s.logger.Warn("Decide: appointment id=%s is not pending (status=%s)", id, appt.Status)
		return nil, ErrNotPending
	}

	action := domain.AuditActionAppointmentApproved
	if approve {
		appt.Status = domain.StatusConfirmed
	} else {
		appt.Status = domain.StatusRejected
		action = domain.AuditActionAppointmentRejected

		// Отклонённая запись освобождает место для других
		if err := s.ledger.Release(ctx, appt.SlotKey()); err != nil {
			s.logger.Error("Decide: failed to release slot %s: %v", appt.SlotKey(), err)
			return nil, wrapInfraErr("Decide - ledger error", err)
		}
	}

	updated, err := s.apptRepo.Update(ctx, appt)
	if err != nil {
		s.logger.Error("Decide: failed to persist appointment id=%s: %v", id, err)
		return nil, wrapInfraErr("Decide - persist error", err)
	}

	s.audit.Record(ctx, action,
		fmt.Sprintf("Appointment %s (%s %s %s) -> %s", id, appt.Day, appt.TimeSlot, appt.Date, appt.Status),
		domain.ActorAdmin)

	if err := s.notify.Send(ctx, notifyservice.NewAppointmentEvent(notifyservice.EventBookingDecided, updated)); err != nil {
		s.logger.Warn("Decide: notification failed for appointment id=%s: %v", id, err)
	}

	s.logger.Info("Decide: appointment id=%s -> %s", id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}
