package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/google/uuid"
)

// ReservationRepository persists the holds a saga attempt made against the ledger
type ReservationRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Reservation, error)
	Close(ctx context.Context, reservation *domain.Reservation) error
}

// SQLiteReservationRepository persists reservations in SQLite
type SQLiteReservationRepository struct {
	db *database.SingleWriterDB
}

// NewReservationRepository creates a new SQLite-backed reservation repository
func NewReservationRepository(db *database.SingleWriterDB) ReservationRepository {
	return &SQLiteReservationRepository{db: db}
}

// FindByOrderID loads the reservation for an order with its lines
func (r *SQLiteReservationRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, status, created_at, closed_at
		FROM reservations
		WHERE order_id = ?`, orderID.String())

	var reservation domain.Reservation
	var idStr, orderIDStr, createdAtStr string
	var closedAtStr sql.NullString

	err := row.Scan(&idStr, &orderIDStr, &reservation.Status, &createdAtStr, &closedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}

	reservation.ID, _ = uuid.Parse(idStr)
	reservation.OrderID, _ = uuid.Parse(orderIDStr)
	reservation.CreatedAt = parseTime(createdAtStr)
	if closedAtStr.Valid {
		closedAt := parseTime(closedAtStr.String)
		reservation.ClosedAt = &closedAt
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity
		FROM reservation_lines
		WHERE reservation_id = ?
		ORDER BY id ASC`, reservation.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.ReservationLine, 0)
	for rows.Next() {
		var line domain.ReservationLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan reservation line: %w", err)
		}
		lines = append(lines, line)
	}
	reservation.Lines = lines
	return &reservation, rows.Err()
}

// Close writes a terminal status back in its own transaction
func (r *SQLiteReservationRepository) Close(ctx context.Context, reservation *domain.Reservation) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return CloseReservationTx(tx, reservation)
	})
}

// CloseReservationTx writes a terminal status inside the caller's transaction.
// The status guard in the WHERE clause makes the terminal transition
// first-writer-wins even without the mutex.
func CloseReservationTx(tx *sql.Tx, reservation *domain.Reservation) error {
	var closedAt interface{}
	if reservation.ClosedAt != nil {
		closedAt = reservation.ClosedAt.UTC().Format(time.RFC3339Nano)
	}

	res, err := tx.Exec(`
		UPDATE reservations
		SET status = ?, closed_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(reservation.Status),
		closedAt,
		reservation.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to close reservation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrReservationClosed
	}
	return nil
}

// FindReservationForUpdateTx loads a reservation and its lines inside the
// caller's transaction
func FindReservationForUpdateTx(tx *sql.Tx, orderID uuid.UUID) (*domain.Reservation, error) {
	row := tx.QueryRow(`
		SELECT id, order_id, status, created_at, closed_at
		FROM reservations
		WHERE order_id = ?`, orderID.String())

	var reservation domain.Reservation
	var idStr, orderIDStr, createdAtStr string
	var closedAtStr sql.NullString

	err := row.Scan(&idStr, &orderIDStr, &reservation.Status, &createdAtStr, &closedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}

	reservation.ID, _ = uuid.Parse(idStr)
	reservation.OrderID, _ = uuid.Parse(orderIDStr)
	reservation.CreatedAt = parseTime(createdAtStr)
	if closedAtStr.Valid {
		closedAt := parseTime(closedAtStr.String)
		reservation.ClosedAt = &closedAt
	}

	rows, err := tx.Query(`
		SELECT product_id, quantity
		FROM reservation_lines
		WHERE reservation_id = ?
		ORDER BY id ASC`, reservation.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.ReservationLine, 0)
	for rows.Next() {
		var line domain.ReservationLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan reservation line: %w", err)
		}
		lines = append(lines, line)
	}
	reservation.Lines = lines
	return &reservation, rows.Err()
}

// InsertReservationTx inserts a reservation and its lines inside tx.
// Used by the coordinator to persist the reservation in the same transaction
// as the order it belongs to.
func InsertReservationTx(tx *sql.Tx, reservation *domain.Reservation) error {
	_, err := tx.Exec(`
		INSERT INTO reservations (id, order_id, status, created_at, closed_at)
		VALUES (?, ?, ?, ?, NULL)`,
		reservation.ID.String(),
		reservation.OrderID.String(),
		string(reservation.Status),
		reservation.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	for _, line := range reservation.Lines {
		_, err := tx.Exec(`
			INSERT INTO reservation_lines (reservation_id, product_id, quantity)
			VALUES (?, ?, ?)`,
			reservation.ID.String(),
			line.ProductID,
			line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert reservation line: %w", err)
		}
	}
	return nil
}
