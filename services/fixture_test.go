package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotelbook/constants"
	"hotelbook/models"
	"hotelbook/repository/memory"
	"hotelbook/services"
)

// recordingNotifier ghi lại thông báo gửi tới từng user
type recordingNotifier struct {
	mu   sync.Mutex
	sent map[uint][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(map[uint][]string)}
}

func (n *recordingNotifier) SendMessage(message string) error { return nil }

func (n *recordingNotifier) SendToUser(userID uint, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[userID] = append(n.sent[userID], message)
	return nil
}

func (n *recordingNotifier) count(userID uint) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent[userID])
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	notifier *recordingNotifier
	bookings *services.BookingService

	customer     services.Identity
	other        services.Identity
	manager      services.Identity
	otherManager services.Identity
	admin        services.Identity

	hotel models.Hotel
	room  models.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:      context.Background(),
		store:    memory.NewStore(),
		notifier: newRecordingNotifier(),
	}
	f.bookings = services.NewBookingService(services.BookingServiceOptions{
		Store:    f.store.Reservations(),
		Notifier: f.notifier,
	})

	f.customer = f.addUser(t, "khach@example.com", constants.UserTypeCustomer)
	f.other = f.addUser(t, "khac@example.com", constants.UserTypeCustomer)
	f.manager = f.addUser(t, "quanly@example.com", constants.UserTypeManager)
	f.otherManager = f.addUser(t, "quanly2@example.com", constants.UserTypeManager)
	f.admin = f.addUser(t, "admin@example.com", constants.UserTypeAdmin)

	f.hotel = f.addHotel(t, f.manager, "Biển Xanh", "Đà Nẵng", true)
	f.room = f.addRoom(t, f.hotel.ID, 100)
	return f
}

func (f *fixture) addUser(t *testing.T, email, userType string) services.Identity {
	t.Helper()
	u := &models.User{
		FirstName:   "Test",
		LastName:    "User",
		Email:       email,
		PhoneNumber: "0901234567",
		UserType:    userType,
	}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return services.Identity{UserID: u.ID, UserType: userType, Email: email}
}

func (f *fixture) addHotel(t *testing.T, manager services.Identity, name, location string, approved bool) models.Hotel {
	t.Helper()
	h := &models.Hotel{Name: name, Location: location, ManagerID: manager.UserID, IsApproved: approved}
	require.NoError(t, f.store.Hotels().Create(f.ctx, h))
	return *h
}

func (f *fixture) addRoom(t *testing.T, hotelID uint, price int) models.Room {
	t.Helper()
	r := &models.Room{HotelID: hotelID, RoomType: "double", Price: price, Capacity: 2, Availability: true}
	require.NoError(t, f.store.Rooms().Create(f.ctx, r))
	return *r
}

func (f *fixture) book(t *testing.T, who services.Identity, roomID uint, in, out string) *models.Reservation {
	t.Helper()
	r, err := f.bookings.Create(f.ctx, who, services.ReservationInput{RoomID: roomID, Stay: stay(in, out)})
	require.NoError(t, err)
	return r
}

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
