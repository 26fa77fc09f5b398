package slotledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/memory"
)

func testKey() domain.SlotKey {
	return domain.SlotKey{Day: domain.DayFriday, TimeSlot: "10:00", Date: "2026-01-16"}
}

func TestRepository_Reserve_UntilFull(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	key := testKey()

	require.NoError(t, repo.Reserve(ctx, key, 2))
	require.NoError(t, repo.Reserve(ctx, key, 2))

	err := repo.Reserve(ctx, key, 2)
	assert.ErrorIs(t, err, ErrSlotFull)

	entry, err := repo.GetEntry(ctx, key, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Occupancy)
	assert.Equal(t, 2, entry.Capacity)
	assert.True(t, entry.IsFull())
}

func TestRepository_Reserve_CapacityChange(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	key := testKey()

	require.NoError(t, repo.Reserve(ctx, key, 1))
	assert.ErrorIs(t, repo.Reserve(ctx, key, 1), ErrSlotFull)

	// Поднятый лимит открывает слот для следующего резерва
	require.NoError(t, repo.Reserve(ctx, key, 2))

	// Сниженный лимит не вытесняет уже занятые места, но блокирует новые
	assert.ErrorIs(t, repo.Reserve(ctx, key, 1), ErrSlotFull)

	entry, err := repo.GetEntry(ctx, key, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Occupancy)
}

func TestRepository_Release_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	key := testKey()

	// Release несуществующего слота — no-op
	require.NoError(t, repo.Release(ctx, key))

	require.NoError(t, repo.Reserve(ctx, key, 1))
	require.NoError(t, repo.Release(ctx, key))

	// Повторный Release не уводит занятость ниже нуля
	require.NoError(t, repo.Release(ctx, key))

	entry, err := repo.GetEntry(ctx, key, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Occupancy)
	assert.Equal(t, 1, entry.AvailableSpots())
}

func TestRepository_GetEntry_Unmaterialized(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())

	entry, err := repo.GetEntry(ctx, testKey(), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Occupancy)
	assert.Equal(t, 3, entry.Capacity)
	assert.Equal(t, 3, entry.AvailableSpots())
}

func TestRepository_GetEntry_ReflectsCurrentCapacity(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	key := testKey()

	// Запись материализована с лимитом 2
	require.NoError(t, repo.Reserve(ctx, key, 2))

	// Поднятый лимит виден при чтении сразу, без нового Reserve
	entry, err := repo.GetEntry(ctx, key, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Occupancy)
	assert.Equal(t, 5, entry.Capacity)
	assert.Equal(t, 4, entry.AvailableSpots())

	// Сниженный лимит ниже текущей занятости не даёт отрицательной доступности
	entry, err = repo.GetEntry(ctx, key, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Occupancy)
	assert.Equal(t, 0, entry.AvailableSpots())
}

func TestRepository_Reserve_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	key := testKey()

	const capacity = 5
	const workers = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Reserve(ctx, key, capacity); err == nil {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Успешных резервов не больше вместимости, и занятость им соответствует
	assert.LessOrEqual(t, reserved, capacity)

	entry, err := repo.GetEntry(ctx, key, capacity)
	require.NoError(t, err)
	assert.Equal(t, reserved, entry.Occupancy)
	assert.LessOrEqual(t, entry.Occupancy, capacity)
}
