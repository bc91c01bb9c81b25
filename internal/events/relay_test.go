package events

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestStore(t *testing.T) (*database.SingleWriterDB, *SQLiteOutboxStore) {
	t.Helper()
	db, err := database.NewSingleWriterDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, NewOutboxStore(db)
}

func appendEvent(t *testing.T, db *database.SingleWriterDB, orderID string) {
	t.Helper()
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		return AppendTx(tx, orderID, TypeOrderCreated, OrderCreatedEvent{
			OrderID:     orderID,
			UserID:      "buyer-1",
			Status:      "pending",
			TotalAmount: "2599.98",
			OccurredAt:  time.Now().UTC(),
		})
	})
	require.NoError(t, err)
}

func TestDrain_DeliversPendingEvents(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()
	appendEvent(t, db, "order-1")
	appendEvent(t, db, "order-2")

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.OutboxEvent")).Return(nil)

	relay := NewRelay(store, publisher, zap.NewNop(), time.Second, 5)
	require.NoError(t, relay.Drain(ctx))

	publisher.AssertNumberOfCalls(t, "Publish", 2)

	pending, err := store.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDrain_FailureBumpsAttemptsAndKeepsRowPending(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()
	appendEvent(t, db, "order-1")

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.OutboxEvent")).
		Return(errors.New("broker unreachable"))

	relay := NewRelay(store, publisher, zap.NewNop(), time.Second, 5)
	require.NoError(t, relay.Drain(ctx))

	pending, err := store.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "broker unreachable", pending[0].LastError)
	assert.Equal(t, OutboxStatusPending, pending[0].Status)
}

func TestDrain_ExhaustedAttemptsParkEventAsFailed(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()
	appendEvent(t, db, "order-1")

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.OutboxEvent")).
		Return(errors.New("broker unreachable"))

	relay := NewRelay(store, publisher, zap.NewNop(), time.Second, 2)
	require.NoError(t, relay.Drain(ctx))
	require.NoError(t, relay.Drain(ctx))

	// Parked rows leave the pending queue but are never deleted
	pending, err := store.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	var status string
	var attempts int
	row := db.QueryRowContext(ctx, `SELECT status, attempts FROM outbox_events WHERE order_id = ?`, "order-1")
	require.NoError(t, row.Scan(&status, &attempts))
	assert.Equal(t, OutboxStatusFailed, status)
	assert.Equal(t, 2, attempts)

	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestDrain_MixedBatch_FailureDoesNotBlockLaterEvents(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()
	appendEvent(t, db, "order-bad")
	appendEvent(t, db, "order-good")

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e OutboxEvent) bool {
		return e.OrderID == "order-bad"
	})).Return(errors.New("broker unreachable"))
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e OutboxEvent) bool {
		return e.OrderID == "order-good"
	})).Return(nil)

	relay := NewRelay(store, publisher, zap.NewNop(), time.Second, 5)
	require.NoError(t, relay.Drain(ctx))

	pending, err := store.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "order-bad", pending[0].OrderID)
}
