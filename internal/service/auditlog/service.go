package auditlog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	auditRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/audit"
)

// wrapRepoErr классифицирует ошибку репозитория: недоступность хранилища
// отличается от прочих внутренних ошибок кодом ответа API
func wrapRepoErr(op string, err error) error {
	if errors.Is(err, auditRepo.ErrStore) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// Service сервис журнала аудита
// Запись в журнал — best-effort наблюдаемость: сбой записи логируется,
// но никогда не блокирует вызвавшую операцию
type Service struct {
	repo         AuditRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аудита
func NewService(repo AuditRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Record добавляет запись о выполненном действии
// Ошибки записи проглатываются после логирования; возвращает созданную
// запись или nil, если запись не удалась
func (s *Service) Record(ctx context.Context, action, details string, actor domain.AuditActor) *domain.AuditEntry {
	now := s.timeProvider.Now().UTC()

	entry := &domain.AuditEntry{
		ID:        newEntryID(now),
		Timestamp: now,
		Action:    action,
		Details:   details,
		Actor:     actor,
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Record: failed to append audit entry action=%q: %v", action, err)
		return nil
	}

	return entry
}

// List возвращает записи журнала, отсортированные по времени (сначала старые)
// Хранилище не гарантирует порядок ключей, поэтому сортируем на своей стороне
func (s *Service) List(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	entries, err := s.repo.List(ctx, 0)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, wrapRepoErr("List - repository error", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	s.logger.Info("List: fetched %d audit entries", len(entries))
	return entries, nil
}

// Purge удаляет все записи журнала и добавляет единственную запись о самой очистке
// Возвращает число удалённых записей (без учёта итоговой записи об очистке)
// Очистка не атомарна поверх KV контракта: при сбое посреди обхода часть
// записей уже удалена, число удалённых возвращается вместе с ошибкой
func (s *Service) Purge(ctx context.Context, actor domain.AuditActor) (int, error) {
	deleted, err := s.repo.PurgeAll(ctx)
	if err != nil {
		s.logger.Error("Purge: repository error after %d deletions: %v", deleted, err)
		return deleted, wrapRepoErr("Purge - repository error", err)
	}

	s.Record(ctx, domain.AuditActionLogPurged,
		fmt.Sprintf("Purged %d audit entries", deleted), actor)

	s.logger.Info("Purge: removed %d audit entries", deleted)
	return deleted, nil
}

// newEntryID генерирует упорядоченный по времени ID записи
// Zero-padded unix nano обеспечивает лексикографический порядок,
// случайный суффикс исключает коллизии в одну наносекунду
func newEntryID(now time.Time) string {
	return fmt.Sprintf("%020d-%s", now.UnixNano(), uuid.NewString()[:8])
}
