package services

import (
	"context"
	"errors"
	"fmt"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/validator"
)

// UserService là các thao tác quản lý người dùng dành cho admin
type UserService struct {
	users        UserStore
	hotels       HotelStore
	reservations ReservationStore
	cache        Cache
	logger       logger.Logger
}

type UserServiceOptions struct {
	Users        UserStore
	Hotels       HotelStore
	Reservations ReservationStore
	Cache        Cache
	Logger       logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	s := &UserService{
		users:        opts.Users,
		hotels:       opts.Hotels,
		reservations: opts.Reservations,
		cache:        opts.Cache,
		logger:       opts.Logger,
	}
	if s.cache == nil {
		s.cache = NopCache{}
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

func (s *UserService) List(ctx context.Context, identity Identity) ([]models.User, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới được xem người dùng")
	}
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, identity Identity, id uint) (*models.User, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới được xem người dùng")
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, identity Identity, id uint, req dto.UpdateUserRequest) (*models.User, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới được sửa người dùng")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		if err := validator.ValidatePhone(req.PhoneNumber); err != nil {
			return nil, err
		}
		user.PhoneNumber = req.PhoneNumber
	}
	if req.UserType != "" {
		user.UserType = req.UserType
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Admin %d cập nhật người dùng %d", identity.UserID, id)
	return user, nil
}

// Delete xoá người dùng; khách sạn, đặt phòng và yêu cầu hỗ trợ của họ bị xoá theo
func (s *UserService) Delete(ctx context.Context, identity Identity, id uint) error {
	if !identity.IsAdmin() {
		return apperr.Unauthorized("Chỉ admin mới được xoá người dùng")
	}
	if id == identity.UserID {
		return apperr.Validation("Không thể tự xoá tài khoản của mình", nil)
	}

	roomIDs, err := s.affectedRooms(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Admin %d xoá người dùng %d", identity.UserID, id)
	keys := []string{constants.CacheKeyApprovedHotels}
	for _, roomID := range roomIDs {
		keys = append(keys, fmt.Sprintf(constants.CacheKeyRoomBookedDates, roomID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error("Không xoá được cache sau khi xoá người dùng %d: %v", id, err)
	}
	return nil
}

// affectedRooms là các phòng có ngày đã đặt thay đổi khi xoá người dùng:
// phòng họ đã đặt và, nếu là manager, mọi phòng của khách sạn họ quản lý
func (s *UserService) affectedRooms(ctx context.Context, userID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if s.reservations != nil {
		reservations, err := s.reservations.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, r := range reservations {
			add(r.RoomID)
		}
	}
	if s.hotels != nil {
		hotel, err := s.hotels.GetByManager(ctx, userID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			for _, room := range hotel.Rooms {
				add(room.ID)
			}
		}
	}
	return ids, nil
}
