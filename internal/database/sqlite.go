package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SingleWriterDB implements Single Writer Principle for SQLite.
// Only one writer can access the database at a time; the per-product and
// per-order serialization the coordinator needs falls out of this plus the
// version checks in the repositories.
type SingleWriterDB struct {
	db     *sql.DB
	logger *zap.Logger
	mu     sync.Mutex // Mutex to ensure single writer
}

// NewSingleWriterDB creates a new database connection with single writer principle
func NewSingleWriterDB(path string, logger *zap.Logger) (*SingleWriterDB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // Single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	swdb := &SingleWriterDB{
		db:     db,
		logger: logger,
	}

	// Initialize schema
	if err := swdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return swdb, nil
}

// WithTx runs fn inside a serialized write transaction. The mutex guarantees
// at most one in-flight transaction, so every mutation observes committed state.
func (swdb *SingleWriterDB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	swdb.mu.Lock()
	defer swdb.mu.Unlock()

	tx, err := swdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			swdb.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// QueryRowContext executes a read query that returns a single row
func (swdb *SingleWriterDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return swdb.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a read query that returns multiple rows
func (swdb *SingleWriterDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return swdb.db.QueryContext(ctx, query, args...)
}

// Ping checks the database connection
func (swdb *SingleWriterDB) Ping() error {
	return swdb.db.Ping()
}

// Close closes the database connection
func (swdb *SingleWriterDB) Close() error {
	return swdb.db.Close()
}

// initSchema creates the database schema
func (swdb *SingleWriterDB) initSchema() error {
	schema := `
	-- Inventory ledger: stock/reserved counters per product (single source of truth)
	CREATE TABLE IF NOT EXISTS inventory_items (
		product_id TEXT PRIMARY KEY,
		stock INTEGER NOT NULL DEFAULT 0,
		reserved INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0,
		low_stock_threshold INTEGER NOT NULL DEFAULT 10,
		reorder_point INTEGER NOT NULL DEFAULT 5,
		last_restocked TEXT NOT NULL,
		last_updated TEXT NOT NULL,
		created_at TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		CHECK(stock >= 0),
		CHECK(reserved >= 0),
		CHECK(total = stock + reserved)
	);

	-- Orders table
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_status TEXT NOT NULL DEFAULT 'pending',
		ship_street TEXT NOT NULL,
		ship_city TEXT NOT NULL,
		ship_postal_code TEXT NOT NULL,
		ship_country TEXT NOT NULL,
		inventory_sync_pending INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		CHECK(status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled', 'refunded')),
		CHECK(payment_status IN ('pending', 'paid', 'failed', 'refunded', 'partially_refunded')),
		CHECK(inventory_sync_pending IN (0, 1))
	);

	-- Order items: price snapshots taken at creation time
	CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		total_price TEXT NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		CHECK(quantity > 0)
	);

	-- Append-only audit trail for order status transitions
	CREATE TABLE IF NOT EXISTS order_status_history (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		previous_status TEXT NOT NULL,
		new_status TEXT NOT NULL,
		actor TEXT NOT NULL,
		notes TEXT,
		occurred_at TEXT NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	);

	-- Reservations: inventory holds per order with one terminal transition
	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL,
		closed_at TEXT,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		CHECK(status IN ('pending', 'confirmed', 'released'))
	);

	CREATE TABLE IF NOT EXISTS reservation_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reservation_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		FOREIGN KEY (reservation_id) REFERENCES reservations(id) ON DELETE CASCADE,
		CHECK(quantity > 0)
	);

	-- Outbox: durable outbound event log, appended in the same transaction
	-- as the state change that produced the event
	CREATE TABLE IF NOT EXISTS outbox_events (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		last_error TEXT,
		created_at TEXT NOT NULL,
		delivered_at TEXT,
		CHECK(status IN ('pending', 'delivered', 'failed'))
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_sync_pending ON orders(inventory_sync_pending);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	CREATE INDEX IF NOT EXISTS idx_status_history_order_id ON order_status_history(order_id);
	CREATE INDEX IF NOT EXISTS idx_reservations_order_id ON reservations(order_id);
	CREATE INDEX IF NOT EXISTS idx_reservation_lines_reservation_id ON reservation_lines(reservation_id);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox_events(status);
	`

	if _, err := swdb.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	swdb.logger.Info("Database schema initialized")
	return nil
}
