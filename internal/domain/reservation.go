package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus tracks the lifecycle of an inventory hold
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusReleased  ReservationStatus = "released"
)

// ReservationLine is one product hold inside a reservation
type ReservationLine struct {
	ProductID string
	Quantity  int
}

// Reservation associates an order with the inventory holds made for it.
// Exactly one terminal transition (confirmed or released) is permitted;
// re-invoking a terminal transition is an idempotent no-op.
type Reservation struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Status    ReservationStatus
	Lines     []ReservationLine
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// NewReservation creates a pending reservation for an order
func NewReservation(orderID uuid.UUID, lines []ReservationLine) *Reservation {
	return &Reservation{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    ReservationStatusPending,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}
}

// Terminal reports whether the reservation has reached a final state
func (r *Reservation) Terminal() bool {
	return r.Status != ReservationStatusPending
}

// Confirm marks the reservation as permanently deducted.
// Returns false if the reservation was already terminal (no-op).
func (r *Reservation) Confirm() (bool, error) {
	if r.Status == ReservationStatusConfirmed {
		return false, nil
	}
	if r.Status == ReservationStatusReleased {
		return false, ErrReservationClosed
	}
	now := time.Now().UTC()
	r.Status = ReservationStatusConfirmed
	r.ClosedAt = &now
	return true, nil
}

// Release marks the reservation as returned to stock.
// Returns false if the reservation was already terminal (no-op).
func (r *Reservation) Release() (bool, error) {
	if r.Status == ReservationStatusReleased {
		return false, nil
	}
	if r.Status == ReservationStatusConfirmed {
		return false, ErrReservationClosed
	}
	now := time.Now().UTC()
	r.Status = ReservationStatusReleased
	r.ClosedAt = &now
	return true, nil
}

// Reservation domain errors
var (
	ErrReservationClosed   = &DomainError{Message: "reservation already closed with a different outcome"}
	ErrReservationNotFound = &DomainError{Message: "reservation not found"}
)
