package dto

type HotelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,len=10,numeric"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// ManageHotelResponse là màn hình quản lý khách sạn của manager
type ManageHotelResponse struct {
	Hotel      interface{} `json:"hotel"`
	IsApproved bool        `json:"isApproved"`
	Rooms      interface{} `json:"rooms"`
}
