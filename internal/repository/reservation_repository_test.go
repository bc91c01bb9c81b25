package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndFindReservation(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewOrderRepository(db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	order := newTestOrder(t)
	require.NoError(t, orderRepo.Create(ctx, order, initialChange(order)))

	reservation := domain.NewReservation(order.ID, []domain.ReservationLine{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	})
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return InsertReservationTx(tx, reservation)
	}))

	found, err := repo.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.ID, found.ID)
	assert.Equal(t, domain.ReservationStatusPending, found.Status)
	assert.Nil(t, found.ClosedAt)
	require.Len(t, found.Lines, 2)
	assert.Equal(t, "prod-1", found.Lines[0].ProductID)
	assert.Equal(t, 2, found.Lines[0].Quantity)
}

func TestFindReservation_NotFound(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))

	_, err := repo.FindByOrderID(context.Background(), uuid.New())
	assert.Equal(t, domain.ErrReservationNotFound, err)
}

func TestCloseReservation_TerminalTransitionPersists(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewOrderRepository(db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	order := newTestOrder(t)
	require.NoError(t, orderRepo.Create(ctx, order, initialChange(order)))
	reservation := domain.NewReservation(order.ID, []domain.ReservationLine{{ProductID: "prod-1", Quantity: 2}})
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return InsertReservationTx(tx, reservation)
	}))

	applied, err := reservation.Confirm()
	require.NoError(t, err)
	require.True(t, applied)
	require.NoError(t, repo.Close(ctx, reservation))

	found, err := repo.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusConfirmed, found.Status)
	assert.NotNil(t, found.ClosedAt)
}

func TestCloseReservation_Error_AlreadyClosed(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewOrderRepository(db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	order := newTestOrder(t)
	require.NoError(t, orderRepo.Create(ctx, order, initialChange(order)))
	reservation := domain.NewReservation(order.ID, []domain.ReservationLine{{ProductID: "prod-1", Quantity: 2}})
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return InsertReservationTx(tx, reservation)
	}))

	_, err := reservation.Confirm()
	require.NoError(t, err)
	require.NoError(t, repo.Close(ctx, reservation))

	// The status guard makes the second close lose: the row is no longer pending
	err = repo.Close(ctx, reservation)
	assert.Equal(t, domain.ErrReservationClosed, err)
}
