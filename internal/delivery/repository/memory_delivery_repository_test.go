package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
)

func TestMemoryDeliveryRepository_SlotUniqueness(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Create_RejectsSecondHolder", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		require.NoError(t, repo.Create(ctx, newDelivery(domain.StatusEmRota, now)))

		err := repo.Create(ctx, newDelivery(domain.StatusEmRota, now))

		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	})

	t.Run("Create_PendingIsUnbounded", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		for range 3 {
			require.NoError(t, repo.Create(ctx, newDelivery(domain.StatusPendente, now)))
		}

		pending, err := repo.ListByStatus(ctx, domain.StatusPendente)
		require.NoError(t, err)
		assert.Len(t, pending, 3)
	})

	t.Run("Update_RejectsOccupiedTarget", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		require.NoError(t, repo.Create(ctx, newDelivery(domain.StatusProducao, now)))
		d := newDelivery(domain.StatusPendente, now)
		require.NoError(t, repo.Create(ctx, d))

		d.Status = domain.StatusProducao
		err := repo.Update(ctx, d, domain.StatusPendente)

		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	})

	t.Run("Update_HolderMayRewriteItself", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		d := newDelivery(domain.StatusEmRota, now)
		require.NoError(t, repo.Create(ctx, d))

		d.Description = "changed"
		require.NoError(t, repo.Update(ctx, d, domain.StatusEmRota))

		got, err := repo.Get(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "changed", got.Description)
	})

	t.Run("Update_CompareAndSwap", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		d := newDelivery(domain.StatusEmRota, now)
		require.NoError(t, repo.Create(ctx, d))

		d.Status = domain.StatusEntregue
		assert.ErrorIs(t, repo.Update(ctx, d, domain.StatusProducao), domain.ErrStatusConflict)
	})
}

func TestMemoryDeliveryRepository_UpdateFields(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_KeepsStoredStatus", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		d := newDelivery(domain.StatusPendente, now)
		require.NoError(t, repo.Create(ctx, d))
		_, err := repo.PromoteOldestPending(ctx, now)
		require.NoError(t, err)

		stale := d.Clone()
		stale.Description = "changed"
		require.NoError(t, repo.UpdateFields(ctx, stale))

		got, err := repo.Get(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "changed", got.Description)
		assert.Equal(t, domain.StatusEmRota, got.Status)
		assert.Equal(t, domain.StatusEmRota, stale.Status)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()

		err := repo.UpdateFields(ctx, newDelivery(domain.StatusPendente, now))

		assert.ErrorIs(t, err, domain.ErrDeliveryNotFound)
	})
}

func TestMemoryDeliveryRepository_PromoteOldestPending(t *testing.T) {
	ctx := context.Background()
	base := time.Now().UTC()

	t.Run("PromotesOldest", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		newer := newDelivery(domain.StatusPendente, base.Add(time.Minute))
		older := newDelivery(domain.StatusPendente, base)
		require.NoError(t, repo.Create(ctx, newer))
		require.NoError(t, repo.Create(ctx, older))

		promoted, err := repo.PromoteOldestPending(ctx, base.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, older.ID, promoted.ID)
		assert.Equal(t, domain.StatusEmRota, promoted.Status)
		assert.Equal(t, base.Add(time.Hour), promoted.UpdatedAt)
	})

	t.Run("TieBrokenByID", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		first := newDelivery(domain.StatusPendente, base)
		second := newDelivery(domain.StatusPendente, base)
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, first))

		promoted, err := repo.PromoteOldestPending(ctx, base)

		require.NoError(t, err)
		assert.Equal(t, first.ID, promoted.ID)
	})

	t.Run("NothingPending", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()

		promoted, err := repo.PromoteOldestPending(ctx, base)

		assert.NoError(t, err)
		assert.Nil(t, promoted)
	})

	t.Run("SlotOccupied", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		require.NoError(t, repo.Create(ctx, newDelivery(domain.StatusEmRota, base)))
		pending := newDelivery(domain.StatusPendente, base)
		require.NoError(t, repo.Create(ctx, pending))

		_, err := repo.PromoteOldestPending(ctx, base)

		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
		got, err := repo.Get(ctx, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPendente, got.Status)
	})

	t.Run("ConcurrentPromotionsFillSlotOnce", func(t *testing.T) {
		repo := NewMemoryDeliveryRepository()
		for i := range 5 {
			require.NoError(t, repo.Create(ctx, newDelivery(domain.StatusPendente, base.Add(time.Duration(i)))))
		}

		var promotedCount atomic.Int32
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if d, err := repo.PromoteOldestPending(ctx, base); err == nil && d != nil {
					promotedCount.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), promotedCount.Load())
		emRota, err := repo.ListByStatus(ctx, domain.StatusEmRota)
		require.NoError(t, err)
		assert.Len(t, emRota, 1)
	})
}

func TestMemoryDeliveryRepository_List(t *testing.T) {
	ctx := context.Background()
	base := time.Now().UTC()
	repo := NewMemoryDeliveryRepository()

	a := newDelivery(domain.StatusPendente, base)
	b := newDelivery(domain.StatusPendente, base.Add(time.Second))
	c := newDelivery(domain.StatusEmRota, base.Add(2*time.Second))
	for _, d := range []*domain.Delivery{b, c, a} {
		require.NoError(t, repo.Create(ctx, d))
	}

	all, err := repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, c.ID, all[2].ID)

	recent, err := repo.List(ctx, domain.ListFilter{SortRecent: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, c.ID, recent[0].ID)
	assert.Equal(t, b.ID, recent[1].ID)

	mine, err := repo.List(ctx, domain.ListFilter{OwnerUserID: &b.OwnerUserID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	deleted, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)
	_, err = repo.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrDeliveryNotFound)
}
