package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Relay drains the outbox: it polls pending rows and hands them to the
// publisher, recording the outcome per row. Delivery is at-least-once; a crash
// after publish but before MarkDelivered redelivers on the next poll.
type Relay struct {
	store        OutboxStore
	publisher    Publisher
	logger       *zap.Logger
	pollInterval time.Duration
	maxAttempts  int
	batchSize    int
}

// NewRelay creates a new outbox relay
func NewRelay(store OutboxStore, publisher Publisher, logger *zap.Logger, pollInterval time.Duration, maxAttempts int) *Relay {
	return &Relay{
		store:        store,
		publisher:    publisher,
		logger:       logger,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		batchSize:    100,
	}
}

// Run polls until the context is cancelled
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("Outbox relay started",
		zap.Duration("poll_interval", r.pollInterval),
		zap.Int("max_attempts", r.maxAttempts),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.logger.Error("Outbox drain failed", zap.Error(err))
			}
		}
	}
}

// Drain delivers one batch of pending events
func (r *Relay) Drain(ctx context.Context) error {
	pending, err := r.store.ListPending(ctx, r.batchSize)
	if err != nil {
		return err
	}

	for _, event := range pending {
		if err := r.publisher.Publish(ctx, event); err != nil {
			r.logger.Warn("Event delivery failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("attempts", event.Attempts+1),
				zap.Error(err),
			)
			if markErr := r.store.RecordFailure(ctx, event.ID, err, r.maxAttempts); markErr != nil {
				r.logger.Error("Failed to record delivery failure", zap.Error(markErr))
			}
			if event.Attempts+1 >= r.maxAttempts {
				r.logger.Error("Event delivery permanently failed, parked for manual inspection",
					zap.String("event_id", event.ID),
					zap.String("order_id", event.OrderID),
					zap.String("event_type", event.EventType),
				)
			}
			continue
		}

		if err := r.store.MarkDelivered(ctx, event.ID); err != nil {
			// The event will be redelivered; consumers dedupe by event id.
			r.logger.Error("Failed to mark event delivered",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}
