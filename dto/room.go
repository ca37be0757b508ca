package dto

import "time"

type RoomRequest struct {
	RoomType     string `json:"roomType" binding:"required"`
	Price        int    `json:"price" binding:"min=0"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	Availability *bool  `json:"availability"`
}

// BookedDatesResponse là danh sách ngày đã bị giữ của một phòng
type BookedDatesResponse struct {
	RoomID uint     `json:"roomId"`
	Dates  []string `json:"dates"`
}

// RoomAvailabilityQuery là bộ lọc phòng trống trên trang chi tiết khách sạn
type RoomAvailabilityQuery struct {
	CheckIn  string `form:"checkin_date" binding:"omitempty,isodate"`
	CheckOut string `form:"checkout_date" binding:"omitempty,isodate"`
	Guests   int    `form:"guests" binding:"omitempty,min=1"`
}

type RoomResponse struct {
	ID           uint      `json:"id"`
	HotelID      uint      `json:"hotelId"`
	RoomType     string    `json:"roomType"`
	Price        int       `json:"price"`
	Capacity     int       `json:"capacity"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
}
