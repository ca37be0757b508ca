package models

import (
	"fmt"
	"time"
)

type Room struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	HotelID      uint          `json:"hotelId" gorm:"index"`
	Hotel        *Hotel        `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	RoomType     string        `json:"roomType" gorm:"type:varchar(50)"`
	Price        int           `json:"price"`
	Capacity     int           `json:"capacity"`
	Availability bool          `json:"availability" gorm:"default:true"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	Reservations []Reservation `json:"-" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

func (r *Room) ValidateCapacity() error {
	if r.Capacity < 1 {
		return fmt.Errorf("invalid capacity: %d, must be at least 1", r.Capacity)
	}
	return nil
}

func (r *Room) ValidatePrice() error {
	if r.Price < 0 {
		return fmt.Errorf("invalid price: %d, must not be negative", r.Price)
	}
	return nil
}
