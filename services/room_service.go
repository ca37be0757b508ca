package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/validator"

	"golang.org/x/sync/singleflight"
)

const bookedDatesTTL = 10 * time.Minute

type RoomService struct {
	rooms        RoomStore
	hotels       HotelStore
	reservations ReservationStore
	cache        Cache
	logger       logger.Logger
	flight       singleflight.Group
}

type RoomServiceOptions struct {
	Rooms        RoomStore
	Hotels       HotelStore
	Reservations ReservationStore
	Cache        Cache
	Logger       logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	s := &RoomService{
		rooms:        opts.Rooms,
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

// Create thêm phòng vào khách sạn của manager đang đăng nhập
func (s *RoomService) Create(ctx context.Context, identity Identity, req dto.RoomRequest) (*models.Room, error) {
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý khách sạn mới được thêm phòng")
	}

	hotel, err := s.hotels.GetByManager(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		HotelID:      hotel.ID,
		RoomType:     req.RoomType,
		Price:        req.Price,
		Capacity:     req.Capacity,
		Availability: true,
	}
	if req.Availability != nil {
		room.Availability = *req.Availability
	}
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Manager %d thêm phòng %d vào khách sạn %d", identity.UserID, room.ID, hotel.ID)
	s.invalidate(ctx, room.ID)
	return room, nil
}

// Update sửa phòng; giá mới không ảnh hưởng tổng tiền của đặt phòng đã có
func (s *RoomService) Update(ctx context.Context, identity Identity, id uint, req dto.RoomRequest) (*models.Room, error) {
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý khách sạn mới được sửa phòng")
	}

	room, err := s.rooms.GetForManager(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}

	room.RoomType = req.RoomType
	room.Price = req.Price
	room.Capacity = req.Capacity
	if req.Availability != nil {
		room.Availability = *req.Availability
	}
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}

	s.invalidate(ctx, room.ID)
	return room, nil
}

// Delete xoá phòng cùng toàn bộ đặt phòng của nó
func (s *RoomService) Delete(ctx context.Context, identity Identity, id uint) error {
	if !identity.IsManager() {
		return apperr.Unauthorized("Chỉ quản lý khách sạn mới được xoá phòng")
	}

	if _, err := s.rooms.GetForManager(ctx, id, identity.UserID); err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Manager %d xoá phòng %d", identity.UserID, id)
	s.invalidate(ctx, id)
	return nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// ListAvailable liệt kê các phòng đang bật nhận đặt
func (s *RoomService) ListAvailable(ctx context.Context) ([]models.Room, error) {
	return s.rooms.ListAvailable(ctx)
}

// BookedDates trả về các ngày đã bị giữ của phòng dạng YYYY-MM-DD, có cache
func (s *RoomService) BookedDates(ctx context.Context, roomID uint) ([]string, error) {
	key := fmt.Sprintf(constants.CacheKeyRoomBookedDates, roomID)

	var cached []string
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Error("Không đọc được cache %s: %v", key, err)
	}
	if found {
		return cached, nil
	}

	// các request trượt cache cùng lúc chỉ đọc DB một lần
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
			return nil, err
		}
		dates, err := s.loadBookedDates(ctx, roomID)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, key, dates, bookedDatesTTL); err != nil {
			s.logger.Error("Không lưu được cache %s: %v", key, err)
			return dates, nil
		}

		// Đặt phòng commit giữa lúc đọc và lúc Set thì lần xoá cache của nó đã chạy trước Set.
		// Đọc lại sau Set, khác hoặc lỗi thì xoá entry vừa ghi.
		fresh, err := s.loadBookedDates(ctx, roomID)
		if err != nil || !slices.Equal(dates, fresh) {
			if err := s.cache.Delete(ctx, key); err != nil {
				s.logger.Error("Không xoá được cache %s: %v", key, err)
			}
		}
		if err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (s *RoomService) loadBookedDates(ctx context.Context, roomID uint) ([]string, error) {
	reservations, err := s.reservations.ListByRooms(ctx, []uint{roomID})
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0)
	for _, day := range ListBookedDates(reservations) {
		dates = append(dates, day.Format(constants.DateLayout))
	}
	return dates, nil
}

func (s *RoomService) invalidate(ctx context.Context, roomID uint) {
	keys := []string{
		fmt.Sprintf(constants.CacheKeyRoomBookedDates, roomID),
		constants.CacheKeyApprovedHotels,
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error("Không xoá được cache phòng %d: %v", roomID, err)
	}
}
