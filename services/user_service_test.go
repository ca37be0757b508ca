package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/services"
)

func TestUserServiceAdminOnly(t *testing.T) {
	f := newFixture(t)
	users := services.NewUserService(services.UserServiceOptions{Users: f.store.Users()})

	_, err := users.List(f.ctx, f.manager)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	all, err := users.List(f.ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	u, err := users.Get(f.ctx, f.admin, f.customer.UserID)
	require.NoError(t, err)
	assert.Equal(t, f.customer.Email, u.Email)
}

func TestUserServiceUpdateKeepsBlankFields(t *testing.T) {
	f := newFixture(t)
	users := services.NewUserService(services.UserServiceOptions{Users: f.store.Users()})

	u, err := users.Update(f.ctx, f.admin, f.customer.UserID, dto.UpdateUserRequest{UserType: constants.UserTypeManager})
	require.NoError(t, err)
	assert.Equal(t, constants.UserTypeManager, u.UserType)
	assert.Equal(t, "Test", u.FirstName)
	assert.Equal(t, "0901234567", u.PhoneNumber)

	_, err = users.Update(f.ctx, f.admin, f.customer.UserID, dto.UpdateUserRequest{PhoneNumber: "12"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestUserServiceDeleteCascades(t *testing.T) {
	f := newFixture(t)
	users := services.NewUserService(services.UserServiceOptions{Users: f.store.Users()})
	r := f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	assert.True(t, errors.Is(users.Delete(f.ctx, f.admin, f.admin.UserID), apperr.ErrValidation))

	require.NoError(t, users.Delete(f.ctx, f.admin, f.manager.UserID))
	_, err := f.store.Hotels().GetByID(f.ctx, f.hotel.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = f.bookings.Get(f.ctx, f.customer, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	assert.True(t, errors.Is(users.Delete(f.ctx, f.admin, f.manager.UserID), apperr.ErrNotFound))
}

func TestUserServiceDeleteInvalidatesCaches(t *testing.T) {
	f := newFixture(t)
	cache := newJSONCache()
	rooms := newRooms(f, cache)
	hotels := newHotels(f, cache, nil)
	users := services.NewUserService(services.UserServiceOptions{
		Users:        f.store.Users(),
		Hotels:       f.store.Hotels(),
		Reservations: f.store.Reservations(),
		Cache:        cache,
	})
	f.book(t, f.customer, f.room.ID, "2030-01-01", "2030-01-03")

	dates, err := rooms.BookedDates(f.ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-01-01", "2030-01-02"}, dates)

	require.NoError(t, users.Delete(f.ctx, f.admin, f.customer.UserID))
	dates, err = rooms.BookedDates(f.ctx, f.room.ID)
	require.NoError(t, err)
	assert.Empty(t, dates)

	listed, err := hotels.ListApproved(f.ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, cache.has(constants.CacheKeyApprovedHotels))

	require.NoError(t, users.Delete(f.ctx, f.admin, f.manager.UserID))
	assert.False(t, cache.has(constants.CacheKeyApprovedHotels))
	listed, err = hotels.ListApproved(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
