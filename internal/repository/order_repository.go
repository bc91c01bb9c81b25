package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines persistence for the order aggregate.
// Status changes are never written without their audit record.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, initial *domain.StatusChange) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order, change *domain.StatusChange) error
	History(ctx context.Context, orderID uuid.UUID) ([]domain.StatusChange, error)
	SetSyncPending(ctx context.Context, orderID uuid.UUID, pending bool) error
	ListSyncPending(ctx context.Context) ([]domain.Order, error)
}

// SQLiteOrderRepository persists orders in SQLite
type SQLiteOrderRepository struct {
	db *database.SingleWriterDB
}

// NewOrderRepository creates a new SQLite-backed order repository
func NewOrderRepository(db *database.SingleWriterDB) OrderRepository {
	return &SQLiteOrderRepository{db: db}
}

// Create persists the order, its item snapshots and the initial status record
// in one transaction
func (r *SQLiteOrderRepository) Create(ctx context.Context, order *domain.Order, initial *domain.StatusChange) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := InsertOrderTx(tx, order); err != nil {
			return err
		}
		return InsertStatusChangeTx(tx, initial)
	})
}

// Update writes the order back with a version check and appends the audit record
func (r *SQLiteOrderRepository) Update(ctx context.Context, order *domain.Order, change *domain.StatusChange) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := UpdateOrderTx(tx, order); err != nil {
			return err
		}
		if change != nil {
			return InsertStatusChangeTx(tx, change)
		}
		return nil
	})
}

// FindByID loads an order with its item snapshots
func (r *SQLiteOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total_amount, status, payment_status,
		       ship_street, ship_city, ship_postal_code, ship_country,
		       inventory_sync_pending, created_at, updated_at, version
		FROM orders
		WHERE id = ?`, id.String())

	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// History returns the append-only status trail, oldest first
func (r *SQLiteOrderRepository) History(ctx context.Context, orderID uuid.UUID) ([]domain.StatusChange, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, previous_status, new_status, actor, notes, occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY occurred_at ASC`, orderID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	defer rows.Close()

	changes := make([]domain.StatusChange, 0)
	for rows.Next() {
		var change domain.StatusChange
		var idStr, orderIDStr, occurredAtStr string
		var notes sql.NullString

		if err := rows.Scan(&idStr, &orderIDStr, &change.PreviousStatus, &change.NewStatus,
			&change.Actor, &notes, &occurredAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}

		change.ID, _ = uuid.Parse(idStr)
		change.OrderID, _ = uuid.Parse(orderIDStr)
		change.Notes = notes.String
		change.OccurredAt = parseTime(occurredAtStr)
		changes = append(changes, change)
	}
	return changes, rows.Err()
}

// SetSyncPending flips the reconciliation flag on an order
func (r *SQLiteOrderRepository) SetSyncPending(ctx context.Context, orderID uuid.UUID, pending bool) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		flag := 0
		if pending {
			flag = 1
		}
		res, err := tx.Exec(`
			UPDATE orders
			SET inventory_sync_pending = ?, updated_at = ?
			WHERE id = ?`,
			flag, time.Now().UTC().Format(time.RFC3339Nano), orderID.String())
		if err != nil {
			return fmt.Errorf("failed to update sync flag: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
}

// ListSyncPending returns orders owing a confirm/release to the ledger
func (r *SQLiteOrderRepository) ListSyncPending(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total_amount, status, payment_status,
		       ship_street, ship_city, ship_postal_code, ship_country,
		       inventory_sync_pending, created_at, updated_at, version
		FROM orders
		WHERE inventory_sync_pending = 1
		ORDER BY updated_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync-pending orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrderFromRows(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *SQLiteOrderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id ASC`, orderID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		var unitPriceStr, totalPriceStr string

		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &unitPriceStr, &totalPriceStr); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.UnitPrice, err = decimal.NewFromString(unitPriceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid unit price: %w", err)
		}
		item.TotalPrice, err = decimal.NewFromString(totalPriceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid total price: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertOrderTx inserts the order row and its item snapshots inside tx.
// Exported so the coordinator can compose order, reservation and outbox
// writes into a single local transaction.
func InsertOrderTx(tx *sql.Tx, order *domain.Order) error {
	syncFlag := 0
	if order.InventorySyncPending {
		syncFlag = 1
	}

	_, err := tx.Exec(`
		INSERT INTO orders
			(id, user_id, total_amount, status, payment_status,
			 ship_street, ship_city, ship_postal_code, ship_country,
			 inventory_sync_pending, created_at, updated_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID.String(),
		order.UserID,
		order.TotalAmount.String(),
		string(order.Status),
		string(order.PaymentStatus),
		order.ShippingAddress.Street,
		order.ShippingAddress.City,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country,
		syncFlag,
		order.CreatedAt.UTC().Format(time.RFC3339Nano),
		order.UpdatedAt.UTC().Format(time.RFC3339Nano),
		order.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, total_price)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID.String(),
			item.ProductID,
			item.Name,
			item.Quantity,
			item.UnitPrice.String(),
			item.TotalPrice.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

// UpdateOrderTx writes mutable order fields back with a version check
func UpdateOrderTx(tx *sql.Tx, order *domain.Order) error {
	syncFlag := 0
	if order.InventorySyncPending {
		syncFlag = 1
	}

	res, err := tx.Exec(`
		UPDATE orders
		SET status = ?, payment_status = ?, inventory_sync_pending = ?, updated_at = ?, version = ?
		WHERE id = ? AND version = ?`,
		string(order.Status),
		string(order.PaymentStatus),
		syncFlag,
		order.UpdatedAt.UTC().Format(time.RFC3339Nano),
		order.Version,
		order.ID.String(),
		order.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The order was loaded moments ago, so zero rows means the version
		// check lost to a concurrent transition.
		return domain.ErrOrderConflict
	}
	return nil
}

// InsertStatusChangeTx appends an audit record inside tx
func InsertStatusChangeTx(tx *sql.Tx, change *domain.StatusChange) error {
	_, err := tx.Exec(`
		INSERT INTO order_status_history
			(id, order_id, previous_status, new_status, actor, notes, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		change.ID.String(),
		change.OrderID.String(),
		string(change.PreviousStatus),
		string(change.NewStatus),
		change.Actor,
		change.Notes,
		change.OccurredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert status change: %w", err)
	}
	return nil
}

type orderScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	order, err := scanOrderFields(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	return order, err
}

func scanOrderFromRows(rows *sql.Rows) (*domain.Order, error) {
	return scanOrderFields(rows)
}

func scanOrderFields(s orderScanner) (*domain.Order, error) {
	var order domain.Order
	var idStr, totalStr, createdAtStr, updatedAtStr string
	var syncFlag int

	err := s.Scan(
		&idStr,
		&order.UserID,
		&totalStr,
		&order.Status,
		&order.PaymentStatus,
		&order.ShippingAddress.Street,
		&order.ShippingAddress.City,
		&order.ShippingAddress.PostalCode,
		&order.ShippingAddress.Country,
		&syncFlag,
		&createdAtStr,
		&updatedAtStr,
		&order.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}
	order.TotalAmount, err = decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid total amount: %w", err)
	}
	order.InventorySyncPending = syncFlag == 1
	order.CreatedAt = parseTime(createdAtStr)
	order.UpdatedAt = parseTime(updatedAtStr)
	return &order, nil
}
