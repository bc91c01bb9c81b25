package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *database.SingleWriterDB {
	t.Helper()
	db, err := database.NewSingleWriterDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newInventoryRepo(t *testing.T) InventoryRepository {
	return NewInventoryRepository(newTestDB(t), zap.NewNop())
}

func TestRestock_CreatesRecordOnFirstContact(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()

	record, err := repo.Restock(ctx, "prod-1", 100, "initial stock")

	require.NoError(t, err)
	assert.Equal(t, 100, record.Stock)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 100, record.Total())

	found, err := repo.FindByProductID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 100, found.Stock)
}

func TestReserve_Success_PersistsBalances(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()
	_, err := repo.Restock(ctx, "prod-1", 50, "")
	require.NoError(t, err)

	record, err := repo.Reserve(ctx, "prod-1", 20)

	require.NoError(t, err)
	assert.Equal(t, 30, record.Stock)
	assert.Equal(t, 20, record.Reserved)

	found, err := repo.FindByProductID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 30, found.Stock)
	assert.Equal(t, 20, found.Reserved)
	assert.Equal(t, 50, found.Total())
}

func TestReserve_UnknownProduct_FailsWithInsufficientStock(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()

	// First contact creates a zero-stock record inside the transaction, so
	// the reserve fails on balance, not on a missing row
	_, err := repo.Reserve(ctx, "prod-unknown", 1)
	assert.Equal(t, domain.ErrInsufficientStock, err)

	// The failed transaction rolled back, including the created record
	_, err = repo.FindByProductID(ctx, "prod-unknown")
	assert.Equal(t, domain.ErrProductNotFound, err)
}

func TestRelease_UnknownProduct_Error(t *testing.T) {
	repo := newInventoryRepo(t)

	_, err := repo.Release(context.Background(), "prod-unknown", 1)
	assert.Equal(t, domain.ErrProductNotFound, err)
}

func TestConfirm_UnknownProduct_Error(t *testing.T) {
	repo := newInventoryRepo(t)

	_, err := repo.Confirm(context.Background(), "prod-unknown", 1)
	assert.Equal(t, domain.ErrProductNotFound, err)
}

func TestReserveReleaseConfirm_RoundTrip(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()
	_, err := repo.Restock(ctx, "prod-1", 100, "")
	require.NoError(t, err)

	_, err = repo.Reserve(ctx, "prod-1", 40)
	require.NoError(t, err)
	_, err = repo.Release(ctx, "prod-1", 10)
	require.NoError(t, err)
	record, err := repo.Confirm(ctx, "prod-1", 30)
	require.NoError(t, err)

	assert.Equal(t, 70, record.Stock)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 70, record.Total())
}

func TestReserve_FailedOperationLeavesBalancesUntouched(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()
	_, err := repo.Restock(ctx, "prod-1", 10, "")
	require.NoError(t, err)

	_, err = repo.Reserve(ctx, "prod-1", 11)
	assert.Equal(t, domain.ErrInsufficientStock, err)

	// The failed reserve left no trace, not even a version bump
	record, err := repo.FindByProductID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, record.Stock)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 2, record.Version)
}

func TestReserve_ConcurrentRequests_NeverOversell(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()
	_, err := repo.Restock(ctx, "prod-1", 10, "")
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	succeeded := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Reserve(ctx, "prod-1", 1); err == nil {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	// Exactly the available units are granted, the rest fail
	assert.Equal(t, 10, len(succeeded))

	record, err := repo.FindByProductID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Stock)
	assert.Equal(t, 10, record.Reserved)
	assert.Equal(t, 10, record.Total())
}

func TestListLowStock_And_ReorderNeeded(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()

	_, err := repo.Restock(ctx, "prod-plenty", 100, "")
	require.NoError(t, err)
	_, err = repo.Restock(ctx, "prod-low", 8, "")
	require.NoError(t, err)
	_, err = repo.Restock(ctx, "prod-critical", 3, "")
	require.NoError(t, err)

	low, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	// Lowest stock first
	assert.Equal(t, "prod-critical", low[0].ProductID)
	assert.Equal(t, "prod-low", low[1].ProductID)

	reorder, err := repo.ListReorderNeeded(ctx)
	require.NoError(t, err)
	require.Len(t, reorder, 1)
	assert.Equal(t, "prod-critical", reorder[0].ProductID)
	assert.Equal(t, domain.StockStatusReorderNeeded, reorder[0].Status())
}

func TestFindByProductID_NotFound(t *testing.T) {
	repo := newInventoryRepo(t)

	_, err := repo.FindByProductID(context.Background(), "prod-missing")
	assert.Equal(t, domain.ErrProductNotFound, err)
}
