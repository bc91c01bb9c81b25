package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInventoryRecord(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)

	assert.Equal(t, "prod-1", record.ProductID)
	assert.Equal(t, 100, record.Stock)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 100, record.Total())
	assert.Equal(t, 10, record.LowStockThreshold)
	assert.Equal(t, 5, record.ReorderPoint)
	assert.Equal(t, 1, record.Version)
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.LastUpdated.IsZero())
}

func TestReserve_Success(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)
	originalVersion := record.Version

	err := record.Reserve(30)

	assert.NoError(t, err)
	assert.Equal(t, 70, record.Stock)
	assert.Equal(t, 30, record.Reserved)
	assert.Equal(t, 100, record.Total())
	assert.Equal(t, originalVersion+1, record.Version)
}

func TestReserve_Error_InsufficientStock(t *testing.T) {
	record := NewInventoryRecord("prod-1", 20)
	originalVersion := record.Version

	err := record.Reserve(30)

	assert.Error(t, err)
	assert.Equal(t, ErrInsufficientStock, err)
	assert.Equal(t, 20, record.Stock)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, originalVersion, record.Version)
}

func TestReserve_Error_InvalidQuantity(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)

	assert.Equal(t, ErrInvalidQuantity, record.Reserve(0))
	assert.Equal(t, ErrInvalidQuantity, record.Reserve(-5))
	assert.Equal(t, 100, record.Stock)
}

func TestRelease_Success(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)
	_ = record.Reserve(40)
	originalVersion := record.Version

	err := record.Release(15)

	assert.NoError(t, err)
	assert.Equal(t, 75, record.Stock)
	assert.Equal(t, 25, record.Reserved)
	assert.Equal(t, 100, record.Total())
	assert.Equal(t, originalVersion+1, record.Version)
}

func TestRelease_Error_InsufficientReserved(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)
	_ = record.Reserve(10)

	err := record.Release(20)

	assert.Error(t, err)
	assert.Equal(t, ErrInsufficientReserved, err)
	assert.Equal(t, 90, record.Stock)
	assert.Equal(t, 10, record.Reserved)
}

func TestConfirm_Success(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)
	_ = record.Reserve(30)

	err := record.Confirm(30)

	assert.NoError(t, err)
	assert.Equal(t, 70, record.Stock)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 70, record.Total())
}

func TestConfirm_Error_InsufficientReserved(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)
	_ = record.Reserve(10)

	err := record.Confirm(20)

	assert.Error(t, err)
	assert.Equal(t, ErrInsufficientReserved, err)
	assert.Equal(t, 10, record.Reserved)
}

func TestRestock_Success(t *testing.T) {
	record := NewInventoryRecord("prod-1", 5)
	before := record.LastRestocked

	err := record.Restock(95)

	assert.NoError(t, err)
	assert.Equal(t, 100, record.Stock)
	assert.False(t, record.LastRestocked.Before(before))
}

func TestRestock_Error_InvalidQuantity(t *testing.T) {
	record := NewInventoryRecord("prod-1", 5)

	assert.Equal(t, ErrInvalidQuantity, record.Restock(0))
	assert.Equal(t, 5, record.Stock)
}

func TestTotal_ConservedAcrossReserveRelease(t *testing.T) {
	record := NewInventoryRecord("prod-1", 100)

	assert.NoError(t, record.Reserve(60))
	assert.NoError(t, record.Release(20))
	assert.NoError(t, record.Reserve(10))
	assert.Equal(t, 100, record.Total())

	// Only confirm removes units from the ledger
	assert.NoError(t, record.Confirm(50))
	assert.Equal(t, 50, record.Total())
}

func TestStatus_Derivation(t *testing.T) {
	record := NewInventoryRecord("prod-1", 0)
	assert.Equal(t, StockStatusOutOfStock, record.Status())

	record.Stock = 3 // at or below reorder point (5)
	assert.Equal(t, StockStatusReorderNeeded, record.Status())

	record.Stock = 5
	assert.Equal(t, StockStatusReorderNeeded, record.Status())

	record.Stock = 8 // above reorder point, at or below low stock threshold (10)
	assert.Equal(t, StockStatusLowStock, record.Status())

	record.Stock = 10
	assert.Equal(t, StockStatusLowStock, record.Status())

	record.Stock = 11
	assert.Equal(t, StockStatusInStock, record.Status())
}

func TestStatus_ReservedDoesNotCountAsAvailable(t *testing.T) {
	record := NewInventoryRecord("prod-1", 12)
	_ = record.Reserve(12)

	// All units are held, none available
	assert.Equal(t, StockStatusOutOfStock, record.Status())
	assert.Equal(t, 12, record.Total())
}
