package builders

import (
	"hotelbook/constants"
	"hotelbook/models"
)

// ReservationBuilder giúp tạo đặt phòng theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo builder với trạng thái mặc định pending
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{Status: constants.ReservationStatusPending},
	}
}

// WithUser thêm người đặt
func (b *ReservationBuilder) WithUser(userID uint) *ReservationBuilder {
	b.reservation.UserID = userID
	return b
}

// WithRoom thêm phòng
func (b *ReservationBuilder) WithRoom(roomID uint) *ReservationBuilder {
	b.reservation.RoomID = roomID
	return b
}

// WithStay thêm ngày nhận và trả phòng
func (b *ReservationBuilder) WithStay(stay models.Stay) *ReservationBuilder {
	b.reservation.CheckIn = stay.CheckIn
	b.reservation.CheckOut = stay.CheckOut
	return b
}

func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

// WithTotalPrice thêm tổng giá
func (b *ReservationBuilder) WithTotalPrice(totalPrice int) *ReservationBuilder {
	b.reservation.TotalPrice = totalPrice
	return b
}

// Build tạo đặt phòng hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
