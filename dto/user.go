package dto

// UpdateUserRequest dùng cho admin cập nhật người dùng, trường rỗng được giữ nguyên
type UpdateUserRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,len=10,numeric"`
	UserType    string `json:"userType" binding:"omitempty,oneof=customer manager admin"`
}
