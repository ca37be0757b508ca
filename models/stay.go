package models

import "time"

// Stay là khoảng lưu trú nửa mở [CheckIn, CheckOut): ngày check-out không bị chiếm.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStay chuẩn hóa hai mốc về 00:00 UTC
func NewStay(checkIn, checkOut time.Time) Stay {
	return Stay{
		CheckIn:  TruncateDay(checkIn),
		CheckOut: TruncateDay(checkOut),
	}
}

// TruncateDay bỏ phần giờ, giữ lại ngày lịch theo UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights trả về số đêm lưu trú, có thể <= 0 nếu khoảng không hợp lệ
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

func (s Stay) Valid() bool {
	return s.Nights() > 0
}

// Overlaps kiểm tra hai khoảng nửa mở có giao nhau không.
// Hai khoảng chạm biên (check-out của khoảng này == check-in của khoảng kia) không giao nhau.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && s.CheckOut.After(other.CheckIn)
}

// Days liệt kê các ngày bị chiếm, từ CheckIn đến trước CheckOut
func (s Stay) Days() []time.Time {
	var days []time.Time
	for day := s.CheckIn; day.Before(s.CheckOut); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
