package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() ShippingAddress {
	return ShippingAddress{
		Street:     "Av. Libertador 1234",
		City:       "Buenos Aires",
		PostalCode: "C1425",
		Country:    "AR",
	}
}

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: "prod-1", Name: "Laptop", Quantity: 2, UnitPrice: decimal.RequireFromString("1299.99")},
		{ProductID: "prod-2", Name: "Mouse", Quantity: 1, UnitPrice: decimal.RequireFromString("49.90")},
	}
}

func TestNewOrder_Success(t *testing.T) {
	order, err := NewOrder("buyer-1", testItems(), testAddress())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, "buyer-1", order.UserID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	assert.False(t, order.InventorySyncPending)
	assert.Equal(t, 1, order.Version)

	// Line totals and grand total computed with exact decimal arithmetic
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("2599.98")))
	assert.True(t, order.Items[1].TotalPrice.Equal(decimal.RequireFromString("49.90")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("2649.88")))
}

func TestNewOrder_Error_MissingUser(t *testing.T) {
	_, err := NewOrder("", testItems(), testAddress())
	assert.Equal(t, ErrMissingUser, err)
}

func TestNewOrder_Error_EmptyItems(t *testing.T) {
	_, err := NewOrder("buyer-1", nil, testAddress())
	assert.Equal(t, ErrEmptyOrder, err)
}

func TestNewOrder_Error_IncompleteAddress(t *testing.T) {
	address := testAddress()
	address.PostalCode = "  "

	_, err := NewOrder("buyer-1", testItems(), address)
	assert.Equal(t, ErrIncompleteAddress, err)
}

func TestNewOrder_Error_NonPositiveQuantity(t *testing.T) {
	items := testItems()
	items[1].Quantity = 0

	_, err := NewOrder("buyer-1", items, testAddress())
	assert.Equal(t, ErrInvalidQuantity, err)
}

func TestTransition_HappyPath(t *testing.T) {
	order, err := NewOrder("buyer-1", testItems(), testAddress())
	require.NoError(t, err)

	for _, next := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered} {
		change, err := order.Transition(next, "seller", "")
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
		assert.Equal(t, next, change.NewStatus)
		assert.Equal(t, order.ID, change.OrderID)
	}

	assert.Equal(t, 4, order.Version)
	assert.True(t, order.Status.IsTerminal())
}

func TestTransition_Error_SkippingStates(t *testing.T) {
	order, _ := NewOrder("buyer-1", testItems(), testAddress())

	_, err := order.Transition(OrderStatusShipped, "seller", "")

	assert.Equal(t, ErrInvalidTransition, err)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, 1, order.Version)
}

func TestTransition_Error_BackwardsFromTerminal(t *testing.T) {
	order, _ := NewOrder("buyer-1", testItems(), testAddress())
	_, _ = order.Transition(OrderStatusProcessing, "seller", "")
	_, _ = order.Transition(OrderStatusShipped, "seller", "")
	_, _ = order.Transition(OrderStatusDelivered, "seller", "")

	_, err := order.Transition(OrderStatusProcessing, "seller", "")
	assert.Equal(t, ErrInvalidTransition, err)

	_, err = order.Transition(OrderStatusCancelled, "seller", "")
	assert.Equal(t, ErrInvalidTransition, err)
}

func TestTransition_CancellableFromAnyNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped} {
		assert.True(t, from.CanTransitionTo(OrderStatusCancelled), "expected %s to be cancellable", from)
	}
	for _, from := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded} {
		assert.False(t, from.CanTransitionTo(OrderStatusCancelled), "expected %s not to be cancellable", from)
	}
}

func TestTransition_RecordsAuditFields(t *testing.T) {
	order, _ := NewOrder("buyer-1", testItems(), testAddress())

	change, err := order.Transition(OrderStatusProcessing, "seller-9", "payment verified")

	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, change.PreviousStatus)
	assert.Equal(t, OrderStatusProcessing, change.NewStatus)
	assert.Equal(t, "seller-9", change.Actor)
	assert.Equal(t, "payment verified", change.Notes)
	assert.False(t, change.OccurredAt.IsZero())
	assert.Equal(t, change.OccurredAt, order.UpdatedAt)
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus("pending"))
	assert.True(t, ValidOrderStatus("cancelled"))
	assert.True(t, ValidOrderStatus("refunded"))
	assert.False(t, ValidOrderStatus("PENDING"))
	assert.False(t, ValidOrderStatus("archived"))
	assert.False(t, ValidOrderStatus(""))
}
