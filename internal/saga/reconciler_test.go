package saga

import (
	"context"
	"testing"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweep_SettlesFlaggedOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := placeTestOrder(t, env)

	// Move the order to cancelled, then re-flag it as if the inline sync had
	// failed. The reservation release is idempotent so the double settlement
	// the flag implies is harmless.
	_, err := env.coordinator.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled, "buyer-1", "")
	require.NoError(t, err)
	require.NoError(t, env.orders.SetSyncPending(ctx, order.ID, true))

	reconciler := NewReconciler(env.coordinator, env.orders, zap.NewNop(), time.Minute)
	reconciler.Sweep(ctx)

	flagged, err := env.orders.ListSyncPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, flagged)

	reservation, err := env.reservations.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusReleased, reservation.Status)
}

func TestSweep_FailureKeepsOrderFlagged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Flagged order with no reservation: settlement keeps failing
	order := newOrderWithoutReservation(t, env)
	_, err := env.coordinator.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled, "buyer-1", "")
	require.NoError(t, err)

	reconciler := NewReconciler(env.coordinator, env.orders, zap.NewNop(), time.Minute)
	reconciler.Sweep(ctx)

	flagged, err := env.orders.ListSyncPending(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, order.ID, flagged[0].ID)
}

func TestSweep_NothingFlagged_NoOp(t *testing.T) {
	env := newTestEnv(t)

	reconciler := NewReconciler(env.coordinator, env.orders, zap.NewNop(), time.Minute)
	reconciler.Sweep(context.Background())

	flagged, err := env.orders.ListSyncPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, flagged)
}
