package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// Store потокобезопасное in-memory реализация kvstore.Store
// Используется в тестах и в dev-режиме (storage.driver = "memory")
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New создает пустое in-memory хранилище
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Get возвращает копию значения по ключу
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, kvstore.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put записывает значение по ключу
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete удаляет ключ
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// List возвращает отсортированный список ключей с указанным префиксом
func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// PutIfUnchanged атомарно записывает значение, если текущее совпадает с expected
func (s *Store) PutIfUnchanged(_ context.Context, key string, expected, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.data[key]

	if expected == nil {
		if exists {
			return kvstore.ErrWriteConflict
		}
	} else {
		if !exists || !bytes.Equal(current, expected) {
			return kvstore.ErrWriteConflict
		}
	}

	s.data[key] = append([]byte(nil), value...)
	return nil
}
