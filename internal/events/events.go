package events

import (
	"time"
)

// Event type names carried in the outbox and in Kafka headers
const (
	TypeOrderCreated       = "OrderCreated"
	TypeOrderStatusUpdated = "OrderStatusUpdated"
)

// OrderCreatedEvent is emitted after an order and its reservation are durably committed
type OrderCreatedEvent struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"totalAmount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderStatusUpdatedEvent is emitted for every legal status transition
type OrderStatusUpdatedEvent struct {
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus"`
	TotalAmount    string    `json:"totalAmount"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Outbox delivery states
const (
	OutboxStatusPending   = "pending"
	OutboxStatusDelivered = "delivered"
	OutboxStatusFailed    = "failed"
)

// OutboxEvent is a durable outbound log entry. Rows are appended in the same
// transaction as the state change that produced them and delivered
// asynchronously by the relay (at-least-once; consumers dedupe by event id).
type OutboxEvent struct {
	ID          string
	OrderID     string
	EventType   string
	Payload     []byte
	Status      string
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	DeliveredAt *time.Time
}
