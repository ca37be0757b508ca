package models

import (
	"fmt"

	"hotelbook/constants"
)

// ReservationState định nghĩa interface cho các trạng thái đặt phòng.
// Approve/Reject do quản lý khách sạn gọi, Resubmit xảy ra khi khách sửa phòng hoặc ngày.
type ReservationState interface {
	Approve(r *Reservation) error
	Reject(r *Reservation) error
	Resubmit(r *Reservation) error
}

// PendingState trạng thái chờ duyệt
type PendingState struct{}

func (s *PendingState) Approve(r *Reservation) error {
	r.Status = constants.ReservationStatusApproved
	return nil
}

func (s *PendingState) Reject(r *Reservation) error {
	r.Status = constants.ReservationStatusRejected
	return nil
}

func (s *PendingState) Resubmit(r *Reservation) error {
	return nil
}

// ApprovedState trạng thái đã duyệt
type ApprovedState struct{}

// Approve lần nữa không làm gì
func (s *ApprovedState) Approve(r *Reservation) error {
	return nil
}

func (s *ApprovedState) Reject(r *Reservation) error {
	r.Status = constants.ReservationStatusRejected
	return nil
}

func (s *ApprovedState) Resubmit(r *Reservation) error {
	r.Status = constants.ReservationStatusPending
	return nil
}

// RejectedState trạng thái bị từ chối. Quản lý vẫn có thể duyệt lại,
// khi đó ngày của phòng phải được kiểm tra trùng lịch lại.
type RejectedState struct{}

func (s *RejectedState) Approve(r *Reservation) error {
	r.Status = constants.ReservationStatusApproved
	return nil
}

func (s *RejectedState) Reject(r *Reservation) error {
	return nil
}

func (s *RejectedState) Resubmit(r *Reservation) error {
	r.Status = constants.ReservationStatusPending
	return nil
}

// GetReservationState trả về state tương ứng với trạng thái đặt phòng
func GetReservationState(status string) (ReservationState, error) {
	switch status {
	case constants.ReservationStatusPending:
		return &PendingState{}, nil
	case constants.ReservationStatusApproved:
		return &ApprovedState{}, nil
	case constants.ReservationStatusRejected:
		return &RejectedState{}, nil
	default:
		return nil, fmt.Errorf("unknown reservation status: %q", status)
	}
}

// ActivatesDates cho biết chuyển trạng thái from -> to có làm đặt phòng bắt đầu giữ ngày không
func ActivatesDates(from, to string) bool {
	return !IsActiveStatus(from) && IsActiveStatus(to)
}
