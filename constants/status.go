package constants

// Loại người dùng
const (
	UserTypeCustomer = "customer"
	UserTypeManager  = "manager"
	UserTypeAdmin    = "admin"
)

// Trạng thái đặt phòng
const (
	ReservationStatusPending  = "pending"
	ReservationStatusApproved = "approved"
	ReservationStatusRejected = "rejected"
)

// Trạng thái yêu cầu hỗ trợ
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusClosed     = "closed"
)

// DateLayout là định dạng ngày YYYY-MM-DD dùng cho check-in/check-out
const DateLayout = "2006-01-02"

// Cache keys
const (
	CacheKeyApprovedHotels  = "hotels:approved"
	CacheKeyRoomBookedDates = "rooms:booked:%d"
	CacheKeyLastSearch      = "last_search:%s"
)
