package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelbook/constants"
	"hotelbook/models"
)

func date(s string) time.Time {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(in, out string) models.Stay {
	return models.NewStay(date(in), date(out))
}

func reservation(id uint, status, in, out string) models.Reservation {
	return models.Reservation{ID: id, RoomID: 1, Status: status, CheckIn: date(in), CheckOut: date(out)}
}

func TestIsAvailable(t *testing.T) {
	existing := []models.Reservation{
		reservation(1, constants.ReservationStatusApproved, "2030-01-05", "2030-01-08"),
		reservation(2, constants.ReservationStatusPending, "2030-01-10", "2030-01-12"),
		reservation(3, constants.ReservationStatusRejected, "2030-01-15", "2030-01-20"),
	}

	tests := []struct {
		name      string
		stay      models.Stay
		excludeID uint
		expected  bool
	}{
		{"free gap", stay("2030-01-08", "2030-01-10"), 0, true},
		{"overlaps approved", stay("2030-01-07", "2030-01-09"), 0, false},
		{"overlaps pending", stay("2030-01-11", "2030-01-13"), 0, false},
		{"rejected does not block", stay("2030-01-16", "2030-01-18"), 0, true},
		{"ends on check-in", stay("2030-01-01", "2030-01-05"), 0, true},
		{"excluded self", stay("2030-01-06", "2030-01-09"), 1, true},
		{"excluded self still blocked by other", stay("2030-01-06", "2030-01-11"), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAvailable(existing, tt.stay, tt.excludeID))
		})
	}
}

func TestIsAvailableEmpty(t *testing.T) {
	assert.True(t, IsAvailable(nil, stay("2030-01-01", "2030-01-02"), 0))
}

func TestConflictsReturnsBlockingReservations(t *testing.T) {
	existing := []models.Reservation{
		reservation(1, constants.ReservationStatusApproved, "2030-01-01", "2030-01-03"),
		reservation(2, constants.ReservationStatusPending, "2030-01-03", "2030-01-05"),
		reservation(3, constants.ReservationStatusRejected, "2030-01-02", "2030-01-04"),
	}

	conflicts := Conflicts(existing, stay("2030-01-02", "2030-01-04"), 0)
	ids := make([]uint, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []uint{1, 2}, ids)
}

func TestListBookedDates(t *testing.T) {
	existing := []models.Reservation{
		reservation(2, constants.ReservationStatusPending, "2030-01-04", "2030-01-06"),
		reservation(1, constants.ReservationStatusApproved, "2030-01-01", "2030-01-03"),
		reservation(3, constants.ReservationStatusApproved, "2030-01-05", "2030-01-07"),
		reservation(4, constants.ReservationStatusRejected, "2030-01-10", "2030-01-12"),
	}

	dates := ListBookedDates(existing)
	assert.Equal(t, []time.Time{
		date("2030-01-01"),
		date("2030-01-02"),
		date("2030-01-04"),
		date("2030-01-05"),
		date("2030-01-06"),
	}, dates)
}

func TestListBookedDatesEmpty(t *testing.T) {
	assert.Empty(t, ListBookedDates(nil))
}
