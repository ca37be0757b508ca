package services

import (
	"context"
	"errors"
	"fmt"

	"hotelbook/builders"
	"hotelbook/constants"
	apperr "hotelbook/errors"
	"hotelbook/metrics"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/services/notification"
)

// ReservationInput là phòng và khoảng lưu trú khách muốn đặt
type ReservationInput struct {
	RoomID uint
	Stay   models.Stay
}

type BookingService struct {
	store    ReservationStore
	cache    Cache
	notifier notification.Service
	logger   logger.Logger
}

type BookingServiceOptions struct {
	Store    ReservationStore
	Cache    Cache
	Notifier notification.Service
	Logger   logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		store:    opts.Store,
		cache:    opts.Cache,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
	if s.cache == nil {
		s.cache = NopCache{}
	}
	if s.notifier == nil {
		s.notifier = notification.Nop{}
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

// Create tạo đặt phòng pending. Kiểm tra trùng lịch và ghi chạy trong cùng transaction có khoá dòng phòng.
func (s *BookingService) Create(ctx context.Context, identity Identity, input ReservationInput) (*models.Reservation, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	if !input.Stay.Valid() {
		return nil, apperr.InvalidDateRange("Ngày trả phòng phải sau ngày nhận phòng")
	}

	var (
		reservation *models.Reservation
		managerID   uint
	)
	err := s.store.WithinTx(ctx, func(tx BookingTx) error {
		room, err := tx.LockRoom(ctx, input.RoomID)
		if err != nil {
			return err
		}

		total, err := s.checkRoom(ctx, tx, room, input.Stay, 0)
		if err != nil {
			return err
		}

		reservation = builders.NewReservationBuilder().
			WithUser(identity.UserID).
			WithRoom(room.ID).
			WithStay(input.Stay).
			WithTotalPrice(total).
			Build()
		if room.Hotel != nil {
			managerID = room.Hotel.ManagerID
		}
		return tx.CreateReservation(ctx, reservation)
	})
	if err != nil {
		s.countConflict(err)
		return nil, err
	}

	metrics.ReservationsCreated.Inc()
	s.logger.Info("Tạo đặt phòng #%d cho phòng %d bởi user %d", reservation.ID, reservation.RoomID, identity.UserID)
	s.invalidateRooms(ctx, reservation.RoomID)
	s.notifyUser(managerID, notification.NewMessageBuilder(notification.EventReservationCreated).WithReservation(reservation).Build())
	return reservation, nil
}

// Update cho phép chủ đặt phòng đổi phòng hoặc ngày; đặt phòng quay về pending và tính lại giá
func (s *BookingService) Update(ctx context.Context, identity Identity, id uint, input ReservationInput) (*models.Reservation, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	if !input.Stay.Valid() {
		return nil, apperr.InvalidDateRange("Ngày trả phòng phải sau ngày nhận phòng")
	}

	var (
		reservation *models.Reservation
		oldRoomID   uint
		managerID   uint
	)
	err := s.store.WithinTx(ctx, func(tx BookingTx) error {
		r, err := tx.LockReservationForUser(ctx, id, identity.UserID)
		if err != nil {
			return err
		}
		oldRoomID = r.RoomID

		room, err := tx.LockRoom(ctx, input.RoomID)
		if err != nil {
			return err
		}

		total, err := s.checkRoom(ctx, tx, room, input.Stay, r.ID)
		if err != nil {
			return err
		}

		state, err := models.GetReservationState(r.Status)
		if err != nil {
			return apperr.NewAppError(apperr.ErrCodeInvalidStatus, "Trạng thái đặt phòng không hợp lệ", err)
		}
		if err := state.Resubmit(r); err != nil {
			return err
		}

		r.RoomID = room.ID
		r.Room = nil
		r.CheckIn = input.Stay.CheckIn
		r.CheckOut = input.Stay.CheckOut
		r.TotalPrice = total
		if room.Hotel != nil {
			managerID = room.Hotel.ManagerID
		}
		reservation = r
		return tx.SaveReservation(ctx, r)
	})
	if err != nil {
		s.countConflict(err)
		return nil, err
	}

	s.logger.Info("Cập nhật đặt phòng #%d: phòng %d, %s", reservation.ID, reservation.RoomID, reservation.Status)
	s.invalidateRooms(ctx, oldRoomID, reservation.RoomID)
	s.notifyUser(managerID, notification.NewMessageBuilder(notification.EventReservationUpdated).WithReservation(reservation).Build())
	return reservation, nil
}

// Delete xoá đặt phòng của chính người dùng, ở bất kỳ trạng thái nào
func (s *BookingService) Delete(ctx context.Context, identity Identity, id uint) error {
	if !identity.Authenticated() {
		return apperr.Unauthorized("Chưa đăng nhập")
	}

	r, err := s.store.DeleteForUser(ctx, id, identity.UserID)
	if err != nil {
		return err
	}

	s.logger.Info("Xoá đặt phòng #%d của user %d", r.ID, identity.UserID)
	s.invalidateRooms(ctx, r.RoomID)
	return nil
}

func (s *BookingService) Get(ctx context.Context, identity Identity, id uint) (*models.Reservation, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	return s.store.GetForUser(ctx, id, identity.UserID)
}

func (s *BookingService) List(ctx context.Context, identity Identity) ([]models.Reservation, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	return s.store.ListByUser(ctx, identity.UserID)
}

// ListForManager liệt kê đặt phòng của các phòng thuộc khách sạn do manager quản lý
func (s *BookingService) ListForManager(ctx context.Context, identity Identity, status string) ([]models.Reservation, error) {
	if !identity.Authenticated() || !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý khách sạn mới xem được danh sách này")
	}
	if status != "" && !validReservationStatus(status) {
		return nil, apperr.NewAppError(apperr.ErrCodeInvalidStatus, "Trạng thái không hợp lệ", nil)
	}
	return s.store.ListByManager(ctx, identity.UserID, status)
}

func (s *BookingService) Approve(ctx context.Context, identity Identity, id uint) (*models.Reservation, error) {
	return s.transition(ctx, identity, id, constants.ReservationStatusApproved)
}

func (s *BookingService) Reject(ctx context.Context, identity Identity, id uint) (*models.Reservation, error) {
	return s.transition(ctx, identity, id, constants.ReservationStatusRejected)
}

// transition chuyển trạng thái do manager thực hiện.
// Đặt phòng bị từ chối không giữ ngày, nên khi duyệt lại phải kiểm tra trùng lịch.
func (s *BookingService) transition(ctx context.Context, identity Identity, id uint, target string) (*models.Reservation, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý khách sạn mới được duyệt đặt phòng")
	}

	var (
		reservation *models.Reservation
		changed     bool
	)
	err := s.store.WithinTx(ctx, func(tx BookingTx) error {
		r, err := tx.LockReservationForManager(ctx, id, identity.UserID)
		if err != nil {
			return err
		}
		reservation = r

		state, err := models.GetReservationState(r.Status)
		if err != nil {
			return apperr.NewAppError(apperr.ErrCodeInvalidStatus, "Trạng thái đặt phòng không hợp lệ", err)
		}

		from := r.Status
		switch target {
		case constants.ReservationStatusApproved:
			err = state.Approve(r)
		case constants.ReservationStatusRejected:
			err = state.Reject(r)
		default:
			err = fmt.Errorf("unsupported target status %q", target)
		}
		if err != nil {
			return err
		}
		if r.Status == from {
			return nil
		}

		if models.ActivatesDates(from, r.Status) {
			if _, err := tx.LockRoom(ctx, r.RoomID); err != nil {
				return err
			}
			existing, err := tx.ActiveReservations(ctx, r.RoomID)
			if err != nil {
				return err
			}
			if !IsAvailable(existing, r.Stay(), r.ID) {
				return apperr.Conflict("Phòng đã có đặt phòng khác trong khoảng thời gian này")
			}
		}

		changed = true
		return tx.SaveReservation(ctx, r)
	})
	if err != nil {
		s.countConflict(err)
		return nil, err
	}

	if changed {
		metrics.ReservationTransitions.WithLabelValues(reservation.Status).Inc()
		s.logger.Info("Đặt phòng #%d chuyển sang %s bởi manager %d", reservation.ID, reservation.Status, identity.UserID)
		s.invalidateRooms(ctx, reservation.RoomID)

		event := notification.EventReservationRejected
		if reservation.Status == constants.ReservationStatusApproved {
			event = notification.EventReservationApproved
		}
		s.notifyUser(reservation.UserID, notification.NewMessageBuilder(event).WithReservation(reservation).Build())
	}
	return reservation, nil
}

// RemindPendingReservations nhắc các manager còn đặt phòng chờ duyệt, trả về số manager đã nhắc
func (s *BookingService) RemindPendingReservations(ctx context.Context) (int, error) {
	counts, err := s.store.PendingCountsByManager(ctx)
	if err != nil {
		return 0, err
	}

	notified := 0
	for managerID, count := range counts {
		if count == 0 {
			continue
		}
		message := notification.NewMessageBuilder(notification.EventPendingReminder).WithPendingCount(count).Build()
		if err := s.notifier.SendToUser(managerID, message); err != nil {
			s.logger.Error("Không gửi được nhắc nhở cho manager %d: %v", managerID, err)
			continue
		}
		notified++
	}
	return notified, nil
}

// checkRoom kiểm tra phòng thuộc khách sạn đã duyệt, còn nhận đặt và trống trong khoảng lưu trú, trả về tổng tiền
func (s *BookingService) checkRoom(ctx context.Context, tx BookingTx, room *models.Room, stay models.Stay, excludeID uint) (int, error) {
	// khách sạn chưa duyệt bị ẩn khỏi tìm kiếm và chi tiết, nên phòng của nó coi như không tồn tại
	if room.Hotel == nil || !room.Hotel.IsApproved {
		return 0, apperr.NotFound("Không tìm thấy phòng")
	}
	if !room.Availability {
		return 0, apperr.Conflict("Phòng hiện không nhận đặt")
	}

	existing, err := tx.ActiveReservations(ctx, room.ID)
	if err != nil {
		return 0, err
	}
	if !IsAvailable(existing, stay, excludeID) {
		return 0, apperr.Conflict("Phòng đã được đặt trong khoảng thời gian này")
	}

	return ComputeTotalPrice(room, stay)
}

func (s *BookingService) countConflict(err error) {
	if errors.Is(err, apperr.ErrConflict) {
		metrics.ReservationConflicts.Inc()
	}
}

func (s *BookingService) invalidateRooms(ctx context.Context, roomIDs ...uint) {
	keys := make([]string, 0, len(roomIDs))
	for _, id := range roomIDs {
		keys = append(keys, fmt.Sprintf(constants.CacheKeyRoomBookedDates, id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error("Không xoá được cache ngày đã đặt: %v", err)
	}
}

func (s *BookingService) notifyUser(userID uint, message string) {
	if userID == 0 {
		return
	}
	if err := s.notifier.SendToUser(userID, message); err != nil {
		s.logger.Error("Không gửi được thông báo cho user %d: %v", userID, err)
	}
}

func validReservationStatus(status string) bool {
	switch status {
	case constants.ReservationStatusPending, constants.ReservationStatusApproved, constants.ReservationStatusRejected:
		return true
	}
	return false
}
