package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReservation() *Reservation {
	return NewReservation(uuid.New(), []ReservationLine{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	})
}

func TestNewReservation(t *testing.T) {
	orderID := uuid.New()
	reservation := NewReservation(orderID, []ReservationLine{{ProductID: "prod-1", Quantity: 3}})

	assert.NotEqual(t, uuid.Nil, reservation.ID)
	assert.Equal(t, orderID, reservation.OrderID)
	assert.Equal(t, ReservationStatusPending, reservation.Status)
	assert.False(t, reservation.Terminal())
	assert.Nil(t, reservation.ClosedAt)
}

func TestConfirm_FromPending(t *testing.T) {
	reservation := testReservation()

	applied, err := reservation.Confirm()

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, ReservationStatusConfirmed, reservation.Status)
	assert.True(t, reservation.Terminal())
	assert.NotNil(t, reservation.ClosedAt)
}

func TestConfirm_RepeatIsNoOp(t *testing.T) {
	reservation := testReservation()
	_, _ = reservation.Confirm()
	closedAt := reservation.ClosedAt

	applied, err := reservation.Confirm()

	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, ReservationStatusConfirmed, reservation.Status)
	assert.Equal(t, closedAt, reservation.ClosedAt)
}

func TestRelease_FromPending(t *testing.T) {
	reservation := testReservation()

	applied, err := reservation.Release()

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, ReservationStatusReleased, reservation.Status)
	assert.True(t, reservation.Terminal())
}

func TestRelease_RepeatIsNoOp(t *testing.T) {
	reservation := testReservation()
	_, _ = reservation.Release()

	applied, err := reservation.Release()

	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, ReservationStatusReleased, reservation.Status)
}

func TestConfirm_Error_AfterRelease(t *testing.T) {
	reservation := testReservation()
	_, _ = reservation.Release()

	applied, err := reservation.Confirm()

	assert.Equal(t, ErrReservationClosed, err)
	assert.False(t, applied)
	assert.Equal(t, ReservationStatusReleased, reservation.Status)
}

func TestRelease_Error_AfterConfirm(t *testing.T) {
	reservation := testReservation()
	_, _ = reservation.Confirm()

	applied, err := reservation.Release()

	assert.Equal(t, ErrReservationClosed, err)
	assert.False(t, applied)
	assert.Equal(t, ReservationStatusConfirmed, reservation.Status)
}
