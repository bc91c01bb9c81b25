package saga

import (
	"context"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/repository"

	"go.uber.org/zap"
)

// Reconciler replays owed confirm/release operations for orders whose
// inventory sync exhausted its retries. Because the settlement path is
// idempotent, replaying an order that was settled between the flag being
// raised and this sweep is harmless.
type Reconciler struct {
	coordinator *Coordinator
	orders      repository.OrderRepository
	logger      *zap.Logger
	interval    time.Duration
}

// NewReconciler creates a reconciler sweeping at the given interval
func NewReconciler(coordinator *Coordinator, orders repository.OrderRepository, logger *zap.Logger, interval time.Duration) *Reconciler {
	return &Reconciler{
		coordinator: coordinator,
		orders:      orders,
		logger:      logger,
		interval:    interval,
	}
}

// Run sweeps until the context is cancelled
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Reconciler started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Reconciler stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep settles every flagged order once. Failures stay flagged and are
// retried on the next sweep.
func (r *Reconciler) Sweep(ctx context.Context) {
	orders, err := r.orders.ListSyncPending(ctx)
	if err != nil {
		r.logger.Error("Failed to list sync-pending orders", zap.Error(err))
		return
	}
	if len(orders) == 0 {
		return
	}

	r.logger.Info("Reconciling flagged orders", zap.Int("count", len(orders)))

	for i := range orders {
		order := &orders[i]
		if err := r.settle(ctx, order); err != nil {
			r.logger.Error("Reconciliation failed, will retry next sweep",
				zap.String("order_id", order.ID.String()),
				zap.String("status", string(order.Status)),
				zap.Error(err),
			)
			continue
		}
		r.logger.Info("Order reconciled",
			zap.String("order_id", order.ID.String()),
			zap.String("status", string(order.Status)),
		)
	}
}

func (r *Reconciler) settle(ctx context.Context, order *domain.Order) error {
	if err := r.coordinator.SyncReservation(ctx, order); err != nil {
		return err
	}
	return r.orders.SetSyncPending(ctx, order.ID, false)
}
