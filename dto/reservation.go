package dto

type ReservationRequest struct {
	RoomID   uint   `json:"roomId" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required,isodate"`
	CheckOut string `json:"checkOut" binding:"required,isodate"`
}

type ReservationStatusQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}
