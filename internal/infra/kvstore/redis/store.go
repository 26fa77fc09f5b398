package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// Store реализация kvstore.Store поверх Redis
// Условная запись использует оптимистичную блокировку WATCH/MULTI/EXEC
type Store struct {
	client *redis.Client
}

// New создает хранилище поверх указанного Redis
func New(addr, password string, db int) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping проверяет доступность Redis
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping failed: %v", kvstore.ErrUnavailable, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (s *Store) Close() error {
	return s.client.Close()
}

// Get возвращает значение по ключу
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kvstore.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", kvstore.ErrUnavailable, key, err)
	}
	return value, nil
}

// Put записывает значение по ключу без TTL
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: SET %s: %v", kvstore.ErrUnavailable, key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: DEL %s: %v", kvstore.ErrUnavailable, key, err)
	}
	return nil
}

// List возвращает все ключи с указанным префиксом (SCAN, не KEYS)
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: SCAN %s*: %v", kvstore.ErrUnavailable, prefix, err)
	}

	return keys, nil
}

// PutIfUnchanged атомарно записывает значение через WATCH-транзакцию
// Параллельная модификация ключа между WATCH и EXEC приводит к ErrWriteConflict
func (s *Store) PutIfUnchanged(ctx context.Context, key string, expected, value []byte) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			current = nil
		case err != nil:
			return fmt.Errorf("%w: GET %s: %v", kvstore.ErrUnavailable, key, err)
		}

		if expected == nil {
			if current != nil {
				return kvstore.ErrWriteConflict
			}
		} else if !bytes.Equal(current, expected) {
			return kvstore.ErrWriteConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return kvstore.ErrWriteConflict
	}
	if err != nil && !errors.Is(err, kvstore.ErrWriteConflict) && !errors.Is(err, kvstore.ErrUnavailable) {
		return fmt.Errorf("%w: WATCH %s: %v", kvstore.ErrUnavailable, key, err)
	}
	return err
}
