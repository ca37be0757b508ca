package services

import (
	"hotelbook/errors"
	"hotelbook/models"
)

// ComputeTotalPrice tính tổng tiền = số đêm × giá phòng tại thời điểm gọi
func ComputeTotalPrice(room *models.Room, stay models.Stay) (int, error) {
	nights := stay.Nights()
	if nights <= 0 {
		return 0, errors.InvalidDateRange("Ngày trả phòng phải sau ngày nhận phòng")
	}
	return nights * room.Price, nil
}
