package models

import (
	"time"

	"hotelbook/constants"
)

type Reservation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"index"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RoomID     uint      `json:"roomId" gorm:"index"`
	Room       *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	CheckIn    time.Time `json:"checkIn" gorm:"type:date"`
	CheckOut   time.Time `json:"checkOut" gorm:"type:date"`
	TotalPrice int       `json:"totalPrice"`
	Status     string    `json:"status" gorm:"type:varchar(50);default:pending"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Stay trả về khoảng lưu trú của đặt phòng
func (r *Reservation) Stay() Stay {
	return NewStay(r.CheckIn, r.CheckOut)
}

// IsActive cho biết đặt phòng có đang giữ ngày của phòng không (pending hoặc approved)
func (r *Reservation) IsActive() bool {
	return IsActiveStatus(r.Status)
}

func IsActiveStatus(status string) bool {
	return status == constants.ReservationStatusPending || status == constants.ReservationStatusApproved
}

// ActiveStatuses là các trạng thái chặn ngày của phòng
func ActiveStatuses() []string {
	return []string{constants.ReservationStatusPending, constants.ReservationStatusApproved}
}
