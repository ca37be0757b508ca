package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelbook/config"
	"hotelbook/constants"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services"
)

// openTestDB kết nối Postgres thật qua TEST_DATABASE_DSN, chạy migrate và làm sạch bảng
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("Postgres test requires TEST_DATABASE_DSN")
	}

	ctx := context.Background()
	db, err := config.ConnectDB(&config.Config{Env: "prod", DBDSN: dsn})
	require.NoError(t, err)
	require.NoError(t, config.RunMigrations(ctx, db, "up"))
	require.NoError(t, db.Exec("TRUNCATE support_tickets, reservations, rooms, hotels, users RESTART IDENTITY CASCADE").Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type pgSeed struct {
	customer services.Identity
	manager  services.Identity
	room     models.Room
}

func seedPostgres(t *testing.T, db *gorm.DB) pgSeed {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(db)

	customer := &models.User{Email: "khach@example.com", UserType: constants.UserTypeCustomer}
	require.NoError(t, users.Create(ctx, customer))
	manager := &models.User{Email: "quanly@example.com", UserType: constants.UserTypeManager}
	require.NoError(t, users.Create(ctx, manager))

	hotel := &models.Hotel{Name: "Biển Xanh", Location: "Đà Nẵng", ManagerID: manager.ID, IsApproved: true}
	require.NoError(t, NewHotelRepository(db).Create(ctx, hotel))
	room := &models.Room{HotelID: hotel.ID, RoomType: "double", Price: 100, Capacity: 2, Availability: true}
	require.NoError(t, NewRoomRepository(db).Create(ctx, room))

	return pgSeed{
		customer: services.Identity{UserID: customer.ID, UserType: constants.UserTypeCustomer},
		manager:  services.Identity{UserID: manager.ID, UserType: constants.UserTypeManager},
		room:     *room,
	}
}

func pgDate(s string) time.Time {
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPostgresConcurrentCreateSingleWinner(t *testing.T) {
	db := openTestDB(t)
	seed := seedPostgres(t, db)
	bookings := services.NewBookingService(services.BookingServiceOptions{Store: NewReservationRepository(db)})
	in := services.ReservationInput{RoomID: seed.room.ID, Stay: models.NewStay(pgDate("2030-01-01"), pgDate("2030-01-04"))}

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = bookings.Create(context.Background(), seed.customer, in)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, apperr.ErrConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPostgresExclusionConstraint(t *testing.T) {
	db := openTestDB(t)
	seed := seedPostgres(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	insert := func(in, out, status string) error {
		return repo.WithinTx(ctx, func(tx services.BookingTx) error {
			return tx.CreateReservation(ctx, &models.Reservation{
				UserID:     seed.customer.UserID,
				RoomID:     seed.room.ID,
				CheckIn:    pgDate(in),
				CheckOut:   pgDate(out),
				TotalPrice: 100,
				Status:     status,
			})
		})
	}

	require.NoError(t, insert("2030-02-01", "2030-02-05", constants.ReservationStatusApproved))

	// ghi thẳng, không qua kiểm tra trùng lịch của service
	err := insert("2030-02-04", "2030-02-06", constants.ReservationStatusPending)
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)

	assert.NoError(t, insert("2030-02-05", "2030-02-07", constants.ReservationStatusPending))
	assert.NoError(t, insert("2030-02-02", "2030-02-03", constants.ReservationStatusRejected))
}

func TestPostgresWithinTxRetries(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	attempts := 0
	err := repo.WithinTx(ctx, func(tx services.BookingTx) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: pgSerializationFailure}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	attempts = 0
	err = repo.WithinTx(ctx, func(tx services.BookingTx) error {
		attempts++
		return &pgconn.PgError{Code: pgDeadlockDetected}
	})
	require.Error(t, err)
	assert.Equal(t, maxTxAttempts, attempts)
	assert.True(t, isRetryable(err))

	attempts = 0
	err = repo.WithinTx(ctx, func(tx services.BookingTx) error {
		attempts++
		return apperr.Conflict("trùng")
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, 1, attempts)
}

func TestPostgresLockReservationForManagerScopesByHotel(t *testing.T) {
	db := openTestDB(t)
	seed := seedPostgres(t, db)
	bookings := services.NewBookingService(services.BookingServiceOptions{Store: NewReservationRepository(db)})
	ctx := context.Background()

	r, err := bookings.Create(ctx, seed.customer, services.ReservationInput{
		RoomID: seed.room.ID,
		Stay:   models.NewStay(pgDate("2030-03-01"), pgDate("2030-03-03")),
	})
	require.NoError(t, err)
	assert.Equal(t, 200, r.TotalPrice)

	stranger := &models.User{Email: "quanly2@example.com", UserType: constants.UserTypeManager}
	require.NoError(t, NewUserRepository(db).Create(ctx, stranger))
	_, err = bookings.Approve(ctx, services.Identity{UserID: stranger.ID, UserType: constants.UserTypeManager}, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	approved, err := bookings.Approve(ctx, seed.manager, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusApproved, approved.Status)
}
