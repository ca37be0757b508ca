package services

import (
	"sort"
	"time"

	"hotelbook/models"
)

// IsAvailable kiểm tra khoảng lưu trú có trống với danh sách đặt phòng của cùng một phòng.
// Chỉ đặt phòng pending/approved mới giữ ngày; excludeID bỏ qua chính đặt phòng đang sửa (0 = không bỏ qua).
func IsAvailable(reservations []models.Reservation, stay models.Stay, excludeID uint) bool {
	return len(Conflicts(reservations, stay, excludeID)) == 0
}

// Conflicts trả về các đặt phòng đang giữ ngày giao với khoảng lưu trú
func Conflicts(reservations []models.Reservation, stay models.Stay, excludeID uint) []models.Reservation {
	var conflicts []models.Reservation
	for _, r := range reservations {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if r.Stay().Overlaps(stay) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// ListBookedDates liệt kê các ngày đã bị giữ (không gồm ngày trả phòng), tăng dần, không trùng
func ListBookedDates(reservations []models.Reservation) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time

	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		for _, day := range r.Stay().Days() {
			if seen[day] {
				continue
			}
			seen[day] = true
			dates = append(dates, day)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}
