package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"go.uber.org/zap"
)

// InventoryRepository defines the atomic ledger operations.
// Each mutation is a single transaction per product: balances, total and
// last_updated change together or not at all.
type InventoryRepository interface {
	Reserve(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error)
	Release(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error)
	Confirm(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error)
	Restock(ctx context.Context, productID string, quantity int, notes string) (*domain.InventoryRecord, error)
	FindByProductID(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	ListLowStock(ctx context.Context) ([]domain.InventoryRecord, error)
	ListReorderNeeded(ctx context.Context) ([]domain.InventoryRecord, error)
}

// SQLiteInventoryRepository persists the ledger in SQLite
type SQLiteInventoryRepository struct {
	db     *database.SingleWriterDB
	logger *zap.Logger
}

// NewInventoryRepository creates a new SQLite-backed inventory repository
func NewInventoryRepository(db *database.SingleWriterDB, logger *zap.Logger) InventoryRepository {
	return &SQLiteInventoryRepository{
		db:     db,
		logger: logger,
	}
}

const inventoryColumns = `product_id, stock, reserved, low_stock_threshold, reorder_point,
	last_restocked, last_updated, created_at, version`

// Reserve moves units from stock to reserved. A record is created on first
// contact with a product, so reserving an unknown product fails with
// InsufficientStock rather than a missing-row error.
func (r *SQLiteInventoryRepository) Reserve(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, true, func(record *domain.InventoryRecord) error {
		return record.Reserve(quantity)
	})
}

// Release returns reserved units to stock
func (r *SQLiteInventoryRepository) Release(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, false, func(record *domain.InventoryRecord) error {
		return record.Release(quantity)
	})
}

// Confirm permanently deducts reserved units
func (r *SQLiteInventoryRepository) Confirm(ctx context.Context, productID string, quantity int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, false, func(record *domain.InventoryRecord) error {
		return record.Confirm(quantity)
	})
}

// Restock adds units to stock
func (r *SQLiteInventoryRepository) Restock(ctx context.Context, productID string, quantity int, notes string) (*domain.InventoryRecord, error) {
	record, err := r.mutate(ctx, productID, true, func(record *domain.InventoryRecord) error {
		return record.Restock(quantity)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Stock replenished",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("notes", notes),
	)
	return record, nil
}

// mutate runs one ledger operation in its own write transaction
func (r *SQLiteInventoryRepository) mutate(ctx context.Context, productID string, createIfMissing bool, op func(*domain.InventoryRecord) error) (*domain.InventoryRecord, error) {
	var result *domain.InventoryRecord

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		record, err := MutateInventoryTx(tx, productID, createIfMissing, op)
		if err != nil {
			return err
		}
		result = record
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// MutateInventoryTx loads the record, applies the domain operation and writes
// the new balances back with a version check, inside the caller's transaction.
// Exported so the coordinator can combine ledger writes with the reservation's
// terminal transition.
func MutateInventoryTx(tx *sql.Tx, productID string, createIfMissing bool, op func(*domain.InventoryRecord) error) (*domain.InventoryRecord, error) {
	record, err := findForUpdate(tx, productID)
	if err == domain.ErrProductNotFound && createIfMissing {
		record = domain.NewInventoryRecord(productID, 0)
		if err := insertRecord(tx, record); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	expectedVersion := record.Version
	if err := op(record); err != nil {
		return nil, err
	}

	res, err := tx.Exec(`
		UPDATE inventory_items
		SET stock = ?, reserved = ?, total = ?, last_restocked = ?, last_updated = ?, version = ?
		WHERE product_id = ? AND version = ?`,
		record.Stock,
		record.Reserved,
		record.Total(),
		record.LastRestocked.UTC().Format(time.RFC3339Nano),
		record.LastUpdated.UTC().Format(time.RFC3339Nano),
		record.Version,
		productID,
		expectedVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		// Single writer makes this unreachable in practice; kept as a guard
		// against a second writer being introduced.
		return nil, fmt.Errorf("concurrent modification of product %s", productID)
	}

	return record, nil
}

// FindByProductID finds a ledger record by product ID
func (r *SQLiteInventoryRepository) FindByProductID(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE product_id = ?`, productID)

	return scanInventoryRecord(row)
}

// ListLowStock returns records at or below their low-stock threshold
func (r *SQLiteInventoryRepository) ListLowStock(ctx context.Context) ([]domain.InventoryRecord, error) {
	return r.list(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE stock <= low_stock_threshold
		ORDER BY stock ASC`)
}

// ListReorderNeeded returns records at or below their reorder point
func (r *SQLiteInventoryRepository) ListReorderNeeded(ctx context.Context) ([]domain.InventoryRecord, error) {
	return r.list(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE stock <= reorder_point
		ORDER BY stock ASC`)
}

func (r *SQLiteInventoryRepository) list(ctx context.Context, query string) ([]domain.InventoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	records := make([]domain.InventoryRecord, 0)
	for rows.Next() {
		record, err := scanInventoryRecordFromRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func findForUpdate(tx *sql.Tx, productID string) (*domain.InventoryRecord, error) {
	row := tx.QueryRow(`
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE product_id = ?`, productID)

	return scanInventoryRecord(row)
}

func insertRecord(tx *sql.Tx, record *domain.InventoryRecord) error {
	_, err := tx.Exec(`
		INSERT INTO inventory_items
			(product_id, stock, reserved, total, low_stock_threshold, reorder_point,
			 last_restocked, last_updated, created_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ProductID,
		record.Stock,
		record.Reserved,
		record.Total(),
		record.LowStockThreshold,
		record.ReorderPoint,
		record.LastRestocked.UTC().Format(time.RFC3339Nano),
		record.LastUpdated.UTC().Format(time.RFC3339Nano),
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		record.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inventory record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInventoryRecord(row *sql.Row) (*domain.InventoryRecord, error) {
	record, err := scanInventory(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrProductNotFound
	}
	return record, err
}

func scanInventoryRecordFromRows(rows *sql.Rows) (*domain.InventoryRecord, error) {
	return scanInventory(rows)
}

func scanInventory(s rowScanner) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	var lastRestockedStr, lastUpdatedStr, createdAtStr string

	err := s.Scan(
		&record.ProductID,
		&record.Stock,
		&record.Reserved,
		&record.LowStockThreshold,
		&record.ReorderPoint,
		&lastRestockedStr,
		&lastUpdatedStr,
		&createdAtStr,
		&record.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan inventory record: %w", err)
	}

	record.LastRestocked = parseTime(lastRestockedStr)
	record.LastUpdated = parseTime(lastUpdatedStr)
	record.CreatedAt = parseTime(createdAtStr)
	return &record, nil
}

func parseTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
