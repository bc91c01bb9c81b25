package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("buyer-1", []domain.OrderItem{
		{ProductID: "prod-1", Name: "Laptop", Quantity: 2, UnitPrice: decimal.RequireFromString("1299.99")},
	}, domain.ShippingAddress{
		Street:     "Av. Libertador 1234",
		City:       "Buenos Aires",
		PostalCode: "C1425",
		Country:    "AR",
	})
	require.NoError(t, err)
	return order
}

func initialChange(order *domain.Order) *domain.StatusChange {
	return &domain.StatusChange{
		ID:             uuid.New(),
		OrderID:        order.ID,
		PreviousStatus: order.Status,
		NewStatus:      order.Status,
		Actor:          order.UserID,
		Notes:          "order created",
		OccurredAt:     order.CreatedAt,
	}
}

func TestCreateAndFindByID(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()
	order := newTestOrder(t)

	require.NoError(t, repo.Create(ctx, order, initialChange(order)))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, "buyer-1", found.UserID)
	assert.Equal(t, domain.OrderStatusPending, found.Status)
	assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("2599.98")))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "prod-1", found.Items[0].ProductID)
	assert.True(t, found.Items[0].UnitPrice.Equal(decimal.RequireFromString("1299.99")))
	assert.Equal(t, "AR", found.ShippingAddress.Country)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.Equal(t, domain.ErrOrderNotFound, err)
}

func TestUpdate_PersistsTransitionAndHistory(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()
	order := newTestOrder(t)
	require.NoError(t, repo.Create(ctx, order, initialChange(order)))

	change, err := order.Transition(domain.OrderStatusProcessing, "seller", "payment verified")
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, order, change))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, found.Status)
	assert.Equal(t, 2, found.Version)

	history, err := repo.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.OrderStatusPending, history[0].NewStatus)
	assert.Equal(t, domain.OrderStatusProcessing, history[1].NewStatus)
	assert.Equal(t, "payment verified", history[1].Notes)
}

func TestUpdate_Error_StaleVersion(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()
	order := newTestOrder(t)
	require.NoError(t, repo.Create(ctx, order, initialChange(order)))

	// Two copies of the same order race on the transition
	stale, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	change, err := order.Transition(domain.OrderStatusProcessing, "seller", "")
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, order, change))

	staleChange, err := stale.Transition(domain.OrderStatusCancelled, "buyer", "")
	require.NoError(t, err)
	err = repo.Update(ctx, stale, staleChange)
	assert.Equal(t, domain.ErrOrderConflict, err)

	// The losing write left no trace
	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, found.Status)
	history, err := repo.History(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSetSyncPending_And_List(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	first := newTestOrder(t)
	require.NoError(t, repo.Create(ctx, first, initialChange(first)))
	time.Sleep(2 * time.Millisecond) // distinct updated_at ordering
	second := newTestOrder(t)
	require.NoError(t, repo.Create(ctx, second, initialChange(second)))

	require.NoError(t, repo.SetSyncPending(ctx, first.ID, true))
	require.NoError(t, repo.SetSyncPending(ctx, second.ID, true))

	pending, err := repo.ListSyncPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, repo.SetSyncPending(ctx, first.ID, false))
	pending, err = repo.ListSyncPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.True(t, pending[0].InventorySyncPending)
}

func TestSetSyncPending_Error_UnknownOrder(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	err := repo.SetSyncPending(context.Background(), uuid.New(), true)
	assert.Equal(t, domain.ErrOrderNotFound, err)
}
