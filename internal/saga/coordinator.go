package saga

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/catalog"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/events"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCatalogUnavailable wraps catalog failures that are not "product missing"
var ErrCatalogUnavailable = errors.New("product catalog unavailable")

// ProductError carries the product that made a saga step fail
type ProductError struct {
	ProductID string
	Err       error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("product %s: %v", e.ProductID, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// ItemRequest is one requested order line, before price snapshotting
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// Coordinator runs the order-creation saga and the confirm/release
// side-effects of order status transitions.
//
// The reserve steps and the order persist are deliberately separate
// transactions: consistency comes from compensation (release what was
// reserved) rather than one transaction spanning the whole flow.
type Coordinator struct {
	db           *database.SingleWriterDB
	inventory    repository.InventoryRepository
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	catalog      catalog.Client
	logger       *zap.Logger
	syncRetries  int
	syncBackoff  time.Duration
}

// NewCoordinator creates a new reservation coordinator
func NewCoordinator(
	db *database.SingleWriterDB,
	inventory repository.InventoryRepository,
	orders repository.OrderRepository,
	reservations repository.ReservationRepository,
	catalogClient catalog.Client,
	logger *zap.Logger,
	syncRetries int,
	syncBackoff time.Duration,
) *Coordinator {
	return &Coordinator{
		db:           db,
		inventory:    inventory,
		orders:       orders,
		reservations: reservations,
		catalog:      catalogClient,
		logger:       logger,
		syncRetries:  syncRetries,
		syncBackoff:  syncBackoff,
	}
}

// PlaceOrder runs the order-creation saga:
// validate → snapshot prices → reserve → persist → emit.
// If any reservation fails partway, every reservation already made for this
// attempt is released and no order row is written.
func (c *Coordinator) PlaceOrder(ctx context.Context, userID string, requests []ItemRequest, address domain.ShippingAddress) (*domain.Order, error) {
	if len(requests) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	// Step 1: snapshot prices. Any unresolvable product fails the whole
	// order before a single unit is held.
	items := make([]domain.OrderItem, 0, len(requests))
	for _, req := range requests {
		if req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}

		product, err := c.catalog.GetProduct(ctx, req.ProductID)
		if err != nil {
			if err == domain.ErrProductNotFound {
				c.logger.Warn("Order rejected, product not found",
					zap.String("user_id", userID),
					zap.String("product_id", req.ProductID),
				)
				return nil, &ProductError{ProductID: req.ProductID, Err: domain.ErrProductNotFound}
			}
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}

		items = append(items, domain.OrderItem{
			ProductID: req.ProductID,
			Name:      product.Name,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		})
	}

	order, err := domain.NewOrder(userID, items, address)
	if err != nil {
		return nil, err
	}

	// Step 2: reserve every line. Each reservation is its own atomic ledger
	// transaction; a failure releases everything reserved so far.
	reserved := make([]domain.ReservationLine, 0, len(order.Items))
	for _, item := range order.Items {
		if _, err := c.inventory.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
			c.logger.Warn("Reservation failed, compensating",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			c.compensate(ctx, reserved)
			return nil, &ProductError{ProductID: item.ProductID, Err: err}
		}
		reserved = append(reserved, domain.ReservationLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	// Step 3: persist order, reservation and the OrderCreated outbox row in
	// one local transaction. A failure here compensates like a step-2 failure.
	reservation := domain.NewReservation(order.ID, reserved)
	initial := &domain.StatusChange{
		ID:             uuid.New(),
		OrderID:        order.ID,
		PreviousStatus: order.Status,
		NewStatus:      order.Status,
		Actor:          userID,
		Notes:          "order created",
		OccurredAt:     order.CreatedAt,
	}

	err = c.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := repository.InsertOrderTx(tx, order); err != nil {
			return err
		}
		if err := repository.InsertStatusChangeTx(tx, initial); err != nil {
			return err
		}
		if err := repository.InsertReservationTx(tx, reservation); err != nil {
			return err
		}
		return events.AppendTx(tx, order.ID.String(), events.TypeOrderCreated, events.OrderCreatedEvent{
			OrderID:     order.ID.String(),
			UserID:      order.UserID,
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount.String(),
			OccurredAt:  order.CreatedAt,
		})
	})
	if err != nil {
		c.logger.Error("Order persist failed after reservations, compensating",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		c.compensate(ctx, reserved)
		return nil, err
	}

	c.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.Int("items", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.String()),
	)
	return order, nil
}

// compensate releases reservations made during a failed attempt, in reverse
// order. Failures are logged and skipped: the units stay reserved and show up
// in the ledger, which is preferable to blocking the caller's error path.
func (c *Coordinator) compensate(ctx context.Context, reserved []domain.ReservationLine) {
	for i := len(reserved) - 1; i >= 0; i-- {
		line := reserved[i]
		if _, err := c.inventory.Release(ctx, line.ProductID, line.Quantity); err != nil {
			c.logger.Error("Compensation release failed",
				zap.String("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
		}
	}
}

// UpdateStatus validates and persists an order status transition, then runs
// the inventory side-effect the transition owes: confirm on delivered,
// release on cancelled.
func (c *Coordinator) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, actor, notes string) (*domain.Order, error) {
	order, err := c.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	change, err := order.Transition(newStatus, actor, notes)
	if err != nil {
		return nil, err
	}

	err = c.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := repository.UpdateOrderTx(tx, order); err != nil {
			return err
		}
		if err := repository.InsertStatusChangeTx(tx, change); err != nil {
			return err
		}
		return events.AppendTx(tx, order.ID.String(), events.TypeOrderStatusUpdated, events.OrderStatusUpdatedEvent{
			OrderID:        order.ID.String(),
			UserID:         order.UserID,
			Status:         string(order.Status),
			PreviousStatus: string(previous),
			TotalAmount:    order.TotalAmount.String(),
			OccurredAt:     change.OccurredAt,
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("previous_status", string(previous)),
		zap.String("new_status", string(order.Status)),
		zap.String("actor", actor),
	)

	// The order's lifecycle progress is already durable. An inventory outage
	// here must not undo it, so the side-effect degrades to a sync-pending
	// flag instead of failing the request.
	if requiresInventorySync(order.Status) {
		if err := c.syncWithRetry(ctx, order); err != nil {
			c.logger.Error("Inventory sync exhausted retries, flagging for reconciliation",
				zap.String("order_id", order.ID.String()),
				zap.String("status", string(order.Status)),
				zap.Error(err),
			)
			order.InventorySyncPending = true
			if flagErr := c.orders.SetSyncPending(ctx, order.ID, true); flagErr != nil {
				c.logger.Error("Failed to flag order for reconciliation",
					zap.String("order_id", order.ID.String()),
					zap.Error(flagErr),
				)
			}
		}
	}

	return order, nil
}

func requiresInventorySync(status domain.OrderStatus) bool {
	return status == domain.OrderStatusDelivered || status == domain.OrderStatusCancelled
}

// syncWithRetry applies the owed confirm/release with exponential backoff
func (c *Coordinator) syncWithRetry(ctx context.Context, order *domain.Order) error {
	var lastErr error
	for attempt := 0; attempt < c.syncRetries; attempt++ {
		if attempt > 0 {
			delay := c.syncBackoff * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.SyncReservation(ctx, order); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// SyncReservation settles an order's reservation against the ledger according
// to the order's current status. The reservation's terminal transition and
// the ledger writes commit together, so a retry either sees pending state and
// redoes everything, or sees terminal state and does nothing: calling this
// twice has the same effect as calling it once.
func (c *Coordinator) SyncReservation(ctx context.Context, order *domain.Order) error {
	if !requiresInventorySync(order.Status) {
		return nil
	}

	target := domain.ReservationStatusConfirmed
	if order.Status == domain.OrderStatusCancelled {
		target = domain.ReservationStatusReleased
	}

	return c.db.WithTx(ctx, func(tx *sql.Tx) error {
		reservation, err := repository.FindReservationForUpdateTx(tx, order.ID)
		if err != nil {
			return err
		}

		if reservation.Status == target {
			// Duplicate delivery of the same transition, nothing owed.
			return nil
		}
		if reservation.Terminal() {
			return domain.ErrReservationClosed
		}

		for _, line := range reservation.Lines {
			op := func(record *domain.InventoryRecord) error {
				if target == domain.ReservationStatusConfirmed {
					return record.Confirm(line.Quantity)
				}
				return record.Release(line.Quantity)
			}
			if _, err := repository.MutateInventoryTx(tx, line.ProductID, false, op); err != nil {
				return err
			}
		}

		if target == domain.ReservationStatusConfirmed {
			_, err = reservation.Confirm()
		} else {
			_, err = reservation.Release()
		}
		if err != nil {
			return err
		}
		return repository.CloseReservationTx(tx, reservation)
	})
}
