package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

func TestStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "key", []byte("value")))

	got, err := s.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	// Удаление идемпотентно
	require.NoError(t, s.Delete(ctx, "key"))
	require.NoError(t, s.Delete(ctx, "key"))

	_, err = s.Get(ctx, "key")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Put(ctx, "appointment:b", []byte("2")))
	require.NoError(t, s.Put(ctx, "appointment:a", []byte("1")))
	require.NoError(t, s.Put(ctx, "audit:x", []byte("3")))

	keys, err := s.List(ctx, "appointment:")
	require.NoError(t, err)
	assert.Equal(t, []string{"appointment:a", "appointment:b"}, keys)

	keys, err = s.List(ctx, "nothing:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_PutIfUnchanged(t *testing.T) {
	ctx := context.Background()
	s := New()

	// expected == nil требует отсутствия ключа
	require.NoError(t, s.PutIfUnchanged(ctx, "key", nil, []byte("v1")))
	assert.ErrorIs(t, s.PutIfUnchanged(ctx, "key", nil, []byte("v2")), kvstore.ErrWriteConflict)

	// Совпадающее expected проходит, устаревшее — конфликт
	require.NoError(t, s.PutIfUnchanged(ctx, "key", []byte("v1"), []byte("v2")))
	assert.ErrorIs(t, s.PutIfUnchanged(ctx, "key", []byte("v1"), []byte("v3")), kvstore.ErrWriteConflict)

	got, err := s.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Put(ctx, "key", []byte("abc")))

	got, err := s.Get(ctx, "key")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := s.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestStore_ConcurrentCAS(t *testing.T) {
	ctx := context.Background()
	s := New()

	const workers = 32

	var wg sync.WaitGroup
	succeeded := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.PutIfUnchanged(ctx, "key", nil, []byte("winner")); err == nil {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	// Ровно один воркер выигрывает условную запись по отсутствующему ключу
	count := 0
	for range succeeded {
		count++
	}
	assert.Equal(t, 1, count)
}
