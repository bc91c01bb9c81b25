package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// PaymentStatus is orthogonal to the order status
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// legalTransitions maps each status to the statuses reachable from it.
// Terminal states (delivered, cancelled, refunded) have no outgoing edges.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

// IsTerminal reports whether the status has no legal outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// CanTransitionTo reports whether the target status is reachable in one step
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether the value names a known status
func ValidOrderStatus(s string) bool {
	_, ok := legalTransitions[OrderStatus(s)]
	return ok
}

// OrderItem is a price snapshot taken at order creation time.
// The snapshot is immutable even if the catalog price later changes.
type OrderItem struct {
	ProductID  string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// ShippingAddress is the destination for an order
type ShippingAddress struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// Complete reports whether every required address field is present
func (a ShippingAddress) Complete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// StatusChange is an append-only audit record for an order status transition
type StatusChange struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	PreviousStatus OrderStatus
	NewStatus      OrderStatus
	Actor          string
	Notes          string
	OccurredAt     time.Time
}

// Order represents the aggregate root for an order
type Order struct {
	ID              uuid.UUID
	UserID          string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	ShippingAddress ShippingAddress
	// InventorySyncPending marks an owed confirm/release that exhausted its
	// retries and will be replayed by the reconciler.
	InventorySyncPending bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int // For optimistic locking
}

// NewOrder creates a pending order from validated line items.
// Item prices must already be snapshotted from the catalog.
func NewOrder(userID string, items []OrderItem, address ShippingAddress) (*Order, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !address.Complete() {
		return nil, ErrIncompleteAddress
	}

	total := decimal.Zero
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		items[i].TotalPrice = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		total = total.Add(items[i].TotalPrice)
	}

	now := time.Now().UTC()
	return &Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusPending,
		ShippingAddress: address,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}, nil
}

// Transition moves the order to a new status and returns the audit record.
// Illegal jumps (e.g. delivered back to processing) are rejected.
func (o *Order) Transition(newStatus OrderStatus, actor, notes string) (*StatusChange, error) {
	if !o.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	change := &StatusChange{
		ID:             uuid.New(),
		OrderID:        o.ID,
		PreviousStatus: o.Status,
		NewStatus:      newStatus,
		Actor:          actor,
		Notes:          notes,
		OccurredAt:     time.Now().UTC(),
	}

	o.Status = newStatus
	o.UpdatedAt = change.OccurredAt
	o.Version++
	return change, nil
}

// Order domain errors
var (
	ErrMissingUser       = &DomainError{Message: "order requires a user"}
	ErrEmptyOrder        = &DomainError{Message: "order must contain at least one item"}
	ErrIncompleteAddress = &DomainError{Message: "shipping address is incomplete"}
	ErrInvalidTransition = &DomainError{Message: "illegal order status transition"}
	ErrOrderNotFound     = &DomainError{Message: "order not found"}
	ErrOrderConflict     = &DomainError{Message: "order was modified concurrently"}
)
