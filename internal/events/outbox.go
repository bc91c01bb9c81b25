package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"

	"github.com/google/uuid"
)

// OutboxStore persists and drains the outbound event log
type OutboxStore interface {
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkDelivered(ctx context.Context, eventID string) error
	RecordFailure(ctx context.Context, eventID string, attemptErr error, maxAttempts int) error
}

// SQLiteOutboxStore persists the outbox in SQLite
type SQLiteOutboxStore struct {
	db *database.SingleWriterDB
}

// NewOutboxStore creates a new SQLite-backed outbox store
func NewOutboxStore(db *database.SingleWriterDB) *SQLiteOutboxStore {
	return &SQLiteOutboxStore{db: db}
}

// AppendTx serializes the payload and appends an outbox row inside tx.
// Keeping the append in the producing transaction is what guarantees the
// event survives a crash between commit and delivery.
func AppendTx(tx *sql.Tx, orderID, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO outbox_events (id, order_id, event_type, payload, status, attempts, created_at)
		VALUES (?, ?, ?, ?, 'pending', 0, ?)`,
		uuid.New().String(),
		orderID,
		eventType,
		string(body),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return nil
}

// ListPending returns undelivered events, oldest first
func (s *SQLiteOutboxStore) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, event_type, payload, status, attempts, COALESCE(last_error, ''), created_at
		FROM outbox_events
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0)
	for rows.Next() {
		var event OutboxEvent
		var payload, createdAtStr string

		if err := rows.Scan(&event.ID, &event.OrderID, &event.EventType, &payload,
			&event.Status, &event.Attempts, &event.LastError, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}

		event.Payload = []byte(payload)
		if t, err := time.Parse(time.RFC3339Nano, createdAtStr); err == nil {
			event.CreatedAt = t
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// MarkDelivered records a successful delivery
func (s *SQLiteOutboxStore) MarkDelivered(ctx context.Context, eventID string) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE outbox_events
			SET status = 'delivered', delivered_at = ?
			WHERE id = ?`,
			time.Now().UTC().Format(time.RFC3339Nano), eventID)
		return err
	})
}

// RecordFailure bumps the attempt counter; once attempts reach maxAttempts the
// row is parked as failed for manual inspection, never deleted.
func (s *SQLiteOutboxStore) RecordFailure(ctx context.Context, eventID string, attemptErr error, maxAttempts int) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE outbox_events
			SET attempts = attempts + 1,
			    last_error = ?,
			    status = CASE WHEN attempts + 1 >= ? THEN 'failed' ELSE 'pending' END
			WHERE id = ?`,
			attemptErr.Error(), maxAttempts, eventID)
		return err
	})
}
