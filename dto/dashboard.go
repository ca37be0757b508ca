package dto

// DailySeries là chuỗi số liệu theo ngày, labels dạng YYYY-MM-DD tăng dần
type DailySeries struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

type ManagerDashboard struct {
	TotalRooms          int         `json:"total_rooms"`
	TotalReservations   int         `json:"total_reservations"`
	PendingReservations int         `json:"pending_reservations"`
	TotalIncome         int         `json:"total_income"`
	AvgPrice            float64     `json:"avg_price"`
	ReservationsPerDay  DailySeries `json:"reservations_per_day"`
}

type AdminDashboard struct {
	TotalHotels         int         `json:"total_hotels"`
	TotalRooms          int         `json:"total_rooms"`
	TotalReservations   int         `json:"total_reservations"`
	PendingReservations int         `json:"pending_reservations"`
	TotalIncome         int         `json:"total_income"`
	AvgPrice            float64     `json:"avg_price"`
	Occupancy           DailySeries `json:"occupancy"`
}
