package kvmetrics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// Store обёртка над kvstore.Store, собирающая метрики операций
type Store struct {
	inner     kvstore.Store
	collector *metrics.Metrics
}

// Wrap оборачивает хранилище сбором метрик длительности и ошибок операций
func Wrap(inner kvstore.Store, collector *metrics.Metrics) *Store {
	return &Store{
		inner:     inner,
		collector: collector,
	}
}

func (s *Store) observe(op string, start time.Time, err error) {
	s.collector.KVOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		s.collector.KVOperationErrors.WithLabelValues(op).Inc()
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.inner.Get(ctx, key)
	s.observe("get", start, err)
	return value, err
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Put(ctx, key, value)
	s.observe("put", start, err)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.inner.List(ctx, prefix)
	s.observe("list", start, err)
	return keys, err
}

func (s *Store) PutIfUnchanged(ctx context.Context, key string, expected, value []byte) error {
	start := time.Now()
	err := s.inner.PutIfUnchanged(ctx, key, expected, value)
	s.observe("put_if_unchanged", start, err)
	return err
}
