package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// psqlbuilder squirrel builder с PostgreSQL-плейсхолдерами ($1, $2, ...)
var psqlbuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store реализация kvstore.Store поверх PostgreSQL
// Хранит все записи в одной таблице kv_entries; условная запись реализована
// через UPDATE с проверкой текущего значения в WHERE
type Store struct {
	db *sql.DB
}

// New создает хранилище поверх подключения к PostgreSQL
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema создает таблицу kv_entries, если её ещё нет
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("%w: create schema: %v", kvstore.ErrUnavailable, err)
	}
	return nil
}

// Get возвращает значение по ключу
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psqlbuilder.Select("value").
		From("kv_entries").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build query: %v", kvstore.ErrUnavailable, err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kvstore.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute query: %v", kvstore.ErrUnavailable, err)
	}
	return value, nil
}

// Put записывает значение по ключу (upsert)
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query, args, err := psqlbuilder.Insert("kv_entries").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Put - build query: %v", kvstore.ErrUnavailable, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Put - execute query: %v", kvstore.ErrUnavailable, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *Store) Delete(ctx context.Context, key string) error {
	query, args, err := psqlbuilder.Delete("kv_entries").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build query: %v", kvstore.ErrUnavailable, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute query: %v", kvstore.ErrUnavailable, err)
	}
	return nil
}

// List возвращает все ключи с указанным префиксом
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := psqlbuilder.Select("key").
		From("kv_entries").
		Where(squirrel.Like{"key": escapeLike(prefix) + "%"}).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build query: %v", kvstore.ErrUnavailable, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", kvstore.ErrUnavailable, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", kvstore.ErrUnavailable, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", kvstore.ErrUnavailable, err)
	}

	return keys, nil
}

// PutIfUnchanged атомарно записывает значение с проверкой текущего
// expected == nil транслируется в INSERT ... ON CONFLICT DO NOTHING,
// иначе — в UPDATE с проверкой значения в WHERE
func (s *Store) PutIfUnchanged(ctx context.Context, key string, expected, value []byte) error {
	var (
		query string
		args  []interface{}
		err   error
	)

	if expected == nil {
		query, args, err = psqlbuilder.Insert("kv_entries").
			Columns("key", "value").
			Values(key, value).
			Suffix("ON CONFLICT (key) DO NOTHING").
			ToSql()
	} else {
		query, args, err = psqlbuilder.Update("kv_entries").
			Set("value", value).
			Where(squirrel.Eq{"key": key, "value": expected}).
			ToSql()
	}
	if err != nil {
		return fmt.Errorf("%w: PutIfUnchanged - build query: %v", kvstore.ErrUnavailable, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: PutIfUnchanged - execute query: %v", kvstore.ErrUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: PutIfUnchanged - rows affected: %v", kvstore.ErrUnavailable, err)
	}
	if affected == 0 {
		return kvstore.ErrWriteConflict
	}
	return nil
}

// escapeLike экранирует спецсимволы LIKE в префиксе ключа
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
