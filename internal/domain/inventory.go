package domain

import (
	"time"
)

// StockStatus is derived from the current balances, never stored.
type StockStatus string

const (
	StockStatusOutOfStock    StockStatus = "out_of_stock"
	StockStatusLowStock      StockStatus = "low_stock"
	StockStatusReorderNeeded StockStatus = "reorder_needed"
	StockStatusInStock       StockStatus = "in_stock"
)

// InventoryRecord represents the aggregate root for a product's stock ledger
type InventoryRecord struct {
	ProductID         string
	Stock             int // units available for new reservations
	Reserved          int // units held for pending orders
	LowStockThreshold int
	ReorderPoint      int
	LastRestocked     time.Time
	LastUpdated       time.Time
	CreatedAt         time.Time
	Version           int // For optimistic locking
}

// NewInventoryRecord creates a ledger record for a product seen for the first time
func NewInventoryRecord(productID string, initialStock int) *InventoryRecord {
	now := time.Now().UTC()
	return &InventoryRecord{
		ProductID:         productID,
		Stock:             initialStock,
		Reserved:          0,
		LowStockThreshold: 10,
		ReorderPoint:      5,
		LastRestocked:     now,
		LastUpdated:       now,
		CreatedAt:         now,
		Version:           1,
	}
}

// Total returns the total units tracked by the ledger (available + reserved)
func (r *InventoryRecord) Total() int {
	return r.Stock + r.Reserved
}

// Status derives the stock status from the current available balance
func (r *InventoryRecord) Status() StockStatus {
	switch {
	case r.Stock == 0:
		return StockStatusOutOfStock
	case r.Stock <= r.ReorderPoint:
		return StockStatusReorderNeeded
	case r.Stock <= r.LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Reserve moves units from stock to reserved
func (r *InventoryRecord) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.Stock < quantity {
		return ErrInsufficientStock
	}
	r.Stock -= quantity
	r.Reserved += quantity
	r.touch()
	return nil
}

// Release returns reserved units to stock
func (r *InventoryRecord) Release(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.Reserved < quantity {
		return ErrInsufficientReserved
	}
	r.Reserved -= quantity
	r.Stock += quantity
	r.touch()
	return nil
}

// Confirm permanently deducts reserved units; stock is unchanged
func (r *InventoryRecord) Confirm(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.Reserved < quantity {
		return ErrInsufficientReserved
	}
	r.Reserved -= quantity
	r.touch()
	return nil
}

// Restock adds units to stock and records the restock time
func (r *InventoryRecord) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	r.Stock += quantity
	r.LastRestocked = time.Now().UTC()
	r.touch()
	return nil
}

func (r *InventoryRecord) touch() {
	r.LastUpdated = time.Now().UTC()
	r.Version++
}

// Domain errors
var (
	ErrInsufficientStock    = &DomainError{Message: "insufficient stock available"}
	ErrInsufficientReserved = &DomainError{Message: "insufficient reserved stock"}
	ErrInvalidQuantity      = &DomainError{Message: "quantity must be positive"}
	ErrProductNotFound      = &DomainError{Message: "product not found"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
