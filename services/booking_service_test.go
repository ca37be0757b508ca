package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/constants"
	apperr "hotelbook/errors"
	"hotelbook/services"
)

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)

	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-04")
	assert.NotZero(t, r.ID)
	assert.Equal(t, constants.ReservationStatusPending, r.Status)
	assert.Equal(t, 300, r.TotalPrice)
	assert.Equal(t, f.customer.UserID, r.UserID)
	assert.Equal(t, 1, f.notifier.count(f.manager.UserID))
}

func TestCreateReservationPriceFixedAtBooking(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	room := f.room
	room.Price = 999
	require.NoError(t, f.store.Rooms().Update(f.ctx, &room))

	got, err := f.bookings.Get(f.ctx, f.customer, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, got.TotalPrice)
}

func TestCreateReservationRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.bookings.Create(f.ctx, f.customer, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-01-02", "2030-01-02")})
	assert.True(t, errors.Is(err, apperr.ErrInvalidDateRange))

	_, err = f.bookings.Create(f.ctx, services.Identity{}, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-01-01", "2030-01-02")})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.bookings.Create(f.ctx, f.customer, services.ReservationInput{RoomID: 9999, Stay: stay("2030-01-01", "2030-01-02")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCreateReservationRoomNotBookable(t *testing.T) {
	f := newFixture(t)
	room := f.room
	room.Availability = false
	require.NoError(t, f.store.Rooms().Update(f.ctx, &room))

	_, err := f.bookings.Create(f.ctx, f.customer, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-01-01", "2030-01-02")})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestCreateReservationUnapprovedHotel(t *testing.T) {
	f := newFixture(t)
	pending := f.addHotel(t, f.otherManager, "Chờ Duyệt", "Huế", false)
	room := f.addRoom(t, pending.ID, 90)
	in := services.ReservationInput{RoomID: room.ID, Stay: stay("2030-01-01", "2030-01-02")}

	_, err := f.bookings.Create(f.ctx, f.customer, in)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-02")
	_, err = f.bookings.Update(f.ctx, f.customer, r.ID, in)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	pending.IsApproved = true
	require.NoError(t, f.store.Hotels().Update(f.ctx, &pending))
	_, err = f.bookings.Create(f.ctx, f.customer, in)
	require.NoError(t, err)
}

func TestCreateReservationOverlapConflicts(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-10")

	for _, s := range [][2]string{
		{"2030-01-05", "2030-01-10"},
		{"2030-01-09", "2030-01-12"},
		{"2030-01-01", "2030-01-06"},
		{"2030-01-06", "2030-01-07"},
	} {
		_, err := f.bookings.Create(f.ctx, f.other, services.ReservationInput{RoomID: f.room.ID, Stay: stay(s[0], s[1])})
		assert.True(t, errors.Is(err, apperr.ErrConflict), "%v should conflict", s)
	}
}

func TestCreateReservationAdjacentStaysAllowed(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-10")

	f.book(t, f.other, f.room.ID, "2030-01-10", "2030-01-12")
	f.book(t, f.other, f.room.ID, "2030-01-01", "2030-01-05")
}

func TestCreateReservationRejectedDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-10")

	_, err := f.bookings.Reject(f.ctx, f.manager, r.ID)
	require.NoError(t, err)

	f.book(t, f.other, f.room.ID, "2030-01-06", "2030-01-08")
}

func TestCreateReservationConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(t)

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.bookings.Create(f.ctx, f.customer, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-03-01", "2030-03-05")})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, apperr.ErrConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	list, err := f.bookings.List(f.ctx, f.customer)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApproveAndReject(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	approved, err := f.bookings.Approve(f.ctx, f.manager, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusApproved, approved.Status)
	assert.Equal(t, 1, f.notifier.count(f.customer.UserID))

	again, err := f.bookings.Approve(f.ctx, f.manager, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusApproved, again.Status)
	assert.Equal(t, 1, f.notifier.count(f.customer.UserID))

	rejected, err := f.bookings.Reject(f.ctx, f.manager, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusRejected, rejected.Status)
	assert.Equal(t, 2, f.notifier.count(f.customer.UserID))
}

func TestApproveRequiresOwningManager(t *testing.T) {
	f := newFixture(t)
	f.addHotel(t, f.otherManager, "Núi Xanh", "Đà Lạt", true)
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	_, err := f.bookings.Approve(f.ctx, f.otherManager, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.bookings.Approve(f.ctx, f.customer, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.bookings.Reject(f.ctx, f.admin, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	got, err := f.bookings.Get(f.ctx, f.customer, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusPending, got.Status)
}

func TestReapproveRejectedChecksConflicts(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-10")
	_, err := f.bookings.Reject(f.ctx, f.manager, first.ID)
	require.NoError(t, err)

	f.book(t, f.other, f.room.ID, "2030-01-08", "2030-01-12")

	_, err = f.bookings.Approve(f.ctx, f.manager, first.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	got, err := f.bookings.Get(f.ctx, f.customer, first.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusRejected, got.Status)
}

func TestReapproveRejectedWhenFree(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-10")
	_, err := f.bookings.Reject(f.ctx, f.manager, r.ID)
	require.NoError(t, err)

	got, err := f.bookings.Approve(f.ctx, f.manager, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusApproved, got.Status)
}

func TestUpdateReservationReturnsToPending(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-08")
	_, err := f.bookings.Approve(f.ctx, f.manager, r.ID)
	require.NoError(t, err)

	// Khoảng mới giao với khoảng cũ của chính nó
	updated, err := f.bookings.Update(f.ctx, f.customer, r.ID, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-01-06", "2030-01-10")})
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusPending, updated.Status)
	assert.Equal(t, 400, updated.TotalPrice)
	assert.Equal(t, date("2030-01-06"), updated.CheckIn)
}

func TestUpdateReservationMovesRoom(t *testing.T) {
	f := newFixture(t)
	second := f.addRoom(t, f.hotel.ID, 250)
	r := f.book(t, f.customer, f.room.ID, "2030-01-05", "2030-01-07")

	updated, err := f.bookings.Update(f.ctx, f.customer, r.ID, services.ReservationInput{RoomID: second.ID, Stay: stay("2030-01-05", "2030-01-07")})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.RoomID)
	assert.Equal(t, 500, updated.TotalPrice)

	// Phòng cũ được giải phóng
	f.book(t, f.other, f.room.ID, "2030-01-05", "2030-01-07")
}

func TestUpdateReservationConflictKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")
	f.book(t, f.other, f.room.ID, "2030-01-05", "2030-01-08")

	_, err := f.bookings.Update(f.ctx, f.customer, r.ID, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-01-02", "2030-01-06")})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	got, err := f.bookings.Get(f.ctx, f.customer, r.ID)
	require.NoError(t, err)
	assert.Equal(t, date("2030-01-03"), got.CheckOut)
	assert.Equal(t, 200, got.TotalPrice)
}

func TestUpdateReservationNotOwner(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	_, err := f.bookings.Update(f.ctx, f.other, r.ID, services.ReservationInput{RoomID: f.room.ID, Stay: stay("2030-01-01", "2030-01-02")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.bookings.Get(f.ctx, f.other, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteReservationFreesDates(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	assert.True(t, errors.Is(f.bookings.Delete(f.ctx, f.other, r.ID), apperr.ErrNotFound))
	require.NoError(t, f.bookings.Delete(f.ctx, f.customer, r.ID))
	assert.True(t, errors.Is(f.bookings.Delete(f.ctx, f.customer, r.ID), apperr.ErrNotFound))

	f.book(t, f.other, f.room.ID, "2030-01-01", "2030-01-03")
}

func TestListForManager(t *testing.T) {
	f := newFixture(t)
	otherHotel := f.addHotel(t, f.otherManager, "Núi Xanh", "Đà Lạt", true)
	otherRoom := f.addRoom(t, otherHotel.ID, 80)

	a := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")
	f.book(t, f.customer, f.room.ID, "2030-01-03", "2030-01-05")
	f.book(t, f.customer, otherRoom.ID, "2030-01-01", "2030-01-03")
	_, err := f.bookings.Approve(f.ctx, f.manager, a.ID)
	require.NoError(t, err)

	all, err := f.bookings.ListForManager(f.ctx, f.manager, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := f.bookings.ListForManager(f.ctx, f.manager, constants.ReservationStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, a.ID, approved[0].ID)

	_, err = f.bookings.ListForManager(f.ctx, f.manager, "cancelled")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = f.bookings.ListForManager(f.ctx, f.customer, "")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestRemindPendingReservations(t *testing.T) {
	f := newFixture(t)
	otherHotel := f.addHotel(t, f.otherManager, "Núi Xanh", "Đà Lạt", true)
	otherRoom := f.addRoom(t, otherHotel.ID, 80)

	f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")
	r := f.book(t, f.customer, otherRoom.ID, "2030-01-01", "2030-01-03")
	_, err := f.bookings.Approve(f.ctx, f.otherManager, r.ID)
	require.NoError(t, err)

	before := f.notifier.count(f.manager.UserID)
	notified, err := f.bookings.RemindPendingReservations(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	assert.Equal(t, before+1, f.notifier.count(f.manager.UserID))
}
