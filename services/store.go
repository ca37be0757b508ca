package services

import (
	"context"

	"hotelbook/constants"
	"hotelbook/models"
)

// Identity là người đang gọi service, luôn được truyền vào tường minh
type Identity struct {
	UserID   uint
	UserType string
	Email    string
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

func (i Identity) IsManager() bool {
	return i.UserType == constants.UserTypeManager
}

func (i Identity) IsAdmin() bool {
	return i.UserType == constants.UserTypeAdmin
}

// BookingTx là các thao tác chạy bên trong một transaction đặt phòng.
// Thứ tự khoá: dòng đặt phòng trước, dòng phòng sau.
type BookingTx interface {
	// LockRoom khoá dòng phòng (SELECT ... FOR UPDATE) và nạp kèm khách sạn
	LockRoom(ctx context.Context, roomID uint) (*models.Room, error)
	ActiveReservations(ctx context.Context, roomID uint) ([]models.Reservation, error)
	// LockReservationForUser chỉ tìm thấy đặt phòng thuộc về userID
	LockReservationForUser(ctx context.Context, id, userID uint) (*models.Reservation, error)
	// LockReservationForManager chỉ tìm thấy đặt phòng của phòng thuộc khách sạn do managerID quản lý
	LockReservationForManager(ctx context.Context, id, managerID uint) (*models.Reservation, error)
	CreateReservation(ctx context.Context, r *models.Reservation) error
	SaveReservation(ctx context.Context, r *models.Reservation) error
}

type ReservationStore interface {
	// WithinTx chạy fn trong một transaction, tự thử lại khi gặp lỗi tuần tự hoá/deadlock
	WithinTx(ctx context.Context, fn func(tx BookingTx) error) error
	GetForUser(ctx context.Context, id, userID uint) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error)
	// ListByManager lọc theo status nếu status khác rỗng
	ListByManager(ctx context.Context, managerID uint, status string) ([]models.Reservation, error)
	ListByRooms(ctx context.Context, roomIDs []uint) ([]models.Reservation, error)
	// DeleteForUser xoá và trả về đặt phòng đã xoá
	DeleteForUser(ctx context.Context, id, userID uint) (*models.Reservation, error)
	PendingCountsByManager(ctx context.Context) (map[uint]int, error)
}

type RoomStore interface {
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	GetForManager(ctx context.Context, id, managerID uint) (*models.Room, error)
	ListAvailable(ctx context.Context) ([]models.Room, error)
	ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error)
}

type HotelStore interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	Update(ctx context.Context, hotel *models.Hotel) error
	Delete(ctx context.Context, id uint) error
	// GetByID nạp kèm danh sách phòng
	GetByID(ctx context.Context, id uint) (*models.Hotel, error)
	GetByManager(ctx context.Context, managerID uint) (*models.Hotel, error)
	ListApproved(ctx context.Context) ([]models.Hotel, error)
	ListPending(ctx context.Context) ([]models.Hotel, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type TicketStore interface {
	Create(ctx context.Context, ticket *models.SupportTicket) error
	Update(ctx context.Context, ticket *models.SupportTicket) error
	GetByID(ctx context.Context, id uint) (*models.SupportTicket, error)
	ListByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error)
	// ListAll sắp xếp mới nhất trước
	ListAll(ctx context.Context) ([]models.SupportTicket, error)
}
