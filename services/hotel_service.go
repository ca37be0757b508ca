package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/validator"
)

const (
	approvedHotelsTTL = 10 * time.Minute
	hotelImageFolder  = "hotels"
)

// RoomFilter lọc phòng theo ngày và số khách. Stay nil nghĩa là không lọc theo ngày.
type RoomFilter struct {
	Stay   *models.Stay
	Guests int
}

type HotelService struct {
	hotels       HotelStore
	reservations ReservationStore
	cache        Cache
	media        MediaUploader
	logger       logger.Logger
}

type HotelServiceOptions struct {
	Hotels       HotelStore
	Reservations ReservationStore
	Cache        Cache
	Media        MediaUploader
	Logger       logger.Logger
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	s := &HotelService{
		hotels:       opts.Hotels,
		reservations: opts.Reservations,
		cache:        opts.Cache,
		media:        opts.Media,
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

// Create tạo khách sạn chờ admin duyệt. Mỗi manager chỉ có một khách sạn.
func (s *HotelService) Create(ctx context.Context, identity Identity, req dto.HotelRequest) (*models.Hotel, error) {
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý mới được tạo khách sạn")
	}

	_, err := s.hotels.GetByManager(ctx, identity.UserID)
	if err == nil {
		return nil, apperr.Conflict("Quản lý đã có khách sạn")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hotel := &models.Hotel{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		ManagerID:   identity.UserID,
		IsApproved:  false,
	}
	if err := validator.ValidateHotel(hotel); err != nil {
		return nil, err
	}

	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, err
	}

	s.logger.Info("Manager %d tạo khách sạn %d, chờ duyệt", identity.UserID, hotel.ID)
	return hotel, nil
}

func (s *HotelService) Update(ctx context.Context, identity Identity, id uint, req dto.HotelRequest) (*models.Hotel, error) {
	hotel, err := s.ownHotel(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	hotel.Name = req.Name
	hotel.Description = req.Description
	hotel.Location = req.Location
	hotel.PhoneNumber = req.PhoneNumber
	hotel.Email = req.Email
	if err := validator.ValidateHotel(hotel); err != nil {
		return nil, err
	}

	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}
	s.invalidateHotels(ctx)
	return hotel, nil
}

// UploadImage tải ảnh lên, cover=true thay ảnh đại diện, ngược lại thêm vào gallery
func (s *HotelService) UploadImage(ctx context.Context, identity Identity, id uint, file io.Reader, cover bool) (*models.Hotel, error) {
	if s.media == nil {
		return nil, apperr.NewAppError(apperr.ErrCodeValidation, "Chưa cấu hình lưu trữ ảnh", nil)
	}

	hotel, err := s.ownHotel(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Upload(ctx, file, hotelImageFolder)
	if err != nil {
		return nil, fmt.Errorf("upload hotel image: %w", err)
	}

	if cover {
		hotel.ImageURL = url
	} else {
		hotel.Gallery = append(hotel.Gallery, url)
	}
	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}
	s.invalidateHotels(ctx)
	return hotel, nil
}

// Manage trả về khách sạn của manager kèm phòng, kể cả khi chưa được duyệt
func (s *HotelService) Manage(ctx context.Context, identity Identity) (*models.Hotel, error) {
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý mới có khách sạn")
	}
	return s.hotels.GetByManager(ctx, identity.UserID)
}

// ListApproved trả về các khách sạn đã duyệt, có cache
func (s *HotelService) ListApproved(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	found, err := s.cache.Get(ctx, constants.CacheKeyApprovedHotels, &hotels)
	if err != nil {
		s.logger.Error("Không đọc được cache khách sạn: %v", err)
	}
	if found {
		return hotels, nil
	}

	hotels, err = s.hotels.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, constants.CacheKeyApprovedHotels, hotels, approvedHotelsTTL); err != nil {
		s.logger.Error("Không lưu được cache khách sạn: %v", err)
	}
	return hotels, nil
}

// Detail trả về khách sạn đã duyệt và các phòng đặt được theo bộ lọc
func (s *HotelService) Detail(ctx context.Context, id uint, filter RoomFilter) (*models.Hotel, []models.Room, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !hotel.IsApproved {
		return nil, nil, apperr.NotFound("Không tìm thấy khách sạn")
	}

	byRoom, err := s.reservationsByRoom(ctx, hotel.Rooms)
	if err != nil {
		return nil, nil, err
	}
	return hotel, BookableRooms(hotel.Rooms, byRoom, filter), nil
}

// Search tìm khách sạn theo địa điểm, ngày và số khách. Bộ lọc thiếu được lấy từ lần tìm trước của session.
func (s *HotelService) Search(ctx context.Context, sessionID string, filters dto.SearchFilters) (*dto.SearchResponse, error) {
	last, err := GetLastFilters(ctx, s.cache, sessionID)
	if err != nil {
		s.logger.Error("Không đọc được bộ lọc cũ của session %s: %v", sessionID, err)
	}
	merged := MergeFilters(last, &filters)

	filter := RoomFilter{Guests: 1}
	if merged.Guests != nil {
		filter.Guests = *merged.Guests
	}
	if merged.CheckIn != "" || merged.CheckOut != "" {
		stay, err := validator.ParseStay(merged.CheckIn, merged.CheckOut)
		if err != nil {
			return nil, err
		}
		filter.Stay = &stay
	}

	if err := SaveLastFilters(ctx, s.cache, sessionID, merged); err != nil {
		s.logger.Error("Không lưu được bộ lọc của session %s: %v", sessionID, err)
	}

	hotels, err := s.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	locations := make([]string, 0, len(hotels))
	for _, h := range hotels {
		locations = append(locations, h.Location)
	}
	matcher := NewLocationMatcher(locations)

	var candidates []models.Hotel
	var rooms []models.Room
	for _, h := range hotels {
		if !matcher.Matches(merged.Location, h.Location) {
			continue
		}
		candidates = append(candidates, h)
		rooms = append(rooms, h.Rooms...)
	}

	byRoom, err := s.reservationsByRoom(ctx, rooms)
	if err != nil {
		return nil, err
	}

	result := &dto.SearchResponse{Filters: *merged, Results: []dto.HotelSearchResult{}}
	for _, h := range candidates {
		bookable := BookableRooms(h.Rooms, byRoom, filter)
		if len(bookable) == 0 {
			continue
		}
		result.Results = append(result.Results, dto.HotelSearchResult{
			ID:          h.ID,
			Name:        h.Name,
			Location:    h.Location,
			Description: h.Description,
			ImageURL:    h.ImageURL,
			MinPrice:    minPrice(bookable),
		})
	}

	if len(result.Results) == 0 && merged.Location != "" {
		result.Suggestion = matcher.Suggest(merged.Location)
	}
	return result, nil
}

func (s *HotelService) ListPending(ctx context.Context, identity Identity) ([]models.Hotel, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới được duyệt khách sạn")
	}
	return s.hotels.ListPending(ctx)
}

func (s *HotelService) Approve(ctx context.Context, identity Identity, id uint) (*models.Hotel, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới được duyệt khách sạn")
	}

	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hotel.IsApproved {
		return hotel, nil
	}

	hotel.IsApproved = true
	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}

	s.logger.Info("Admin %d duyệt khách sạn %d", identity.UserID, id)
	s.invalidateHotels(ctx)
	return hotel, nil
}

// Reject xoá khách sạn bị từ chối cùng phòng và đặt phòng của nó
func (s *HotelService) Reject(ctx context.Context, identity Identity, id uint) error {
	if !identity.IsAdmin() {
		return apperr.Unauthorized("Chỉ admin mới được duyệt khách sạn")
	}

	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hotels.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Admin %d từ chối khách sạn %d", identity.UserID, id)
	keys := []string{constants.CacheKeyApprovedHotels}
	for _, room := range hotel.Rooms {
		keys = append(keys, fmt.Sprintf(constants.CacheKeyRoomBookedDates, room.ID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error("Không xoá được cache khách sạn %d: %v", id, err)
	}
	return nil
}

// ownHotel chỉ trả về khách sạn thuộc manager đang gọi, ngược lại là NotFound
func (s *HotelService) ownHotel(ctx context.Context, identity Identity, id uint) (*models.Hotel, error) {
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý mới được sửa khách sạn")
	}
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hotel.ManagerID != identity.UserID {
		return nil, apperr.NotFound("Không tìm thấy khách sạn")
	}
	return hotel, nil
}

func (s *HotelService) reservationsByRoom(ctx context.Context, rooms []models.Room) (map[uint][]models.Reservation, error) {
	ids := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}
	reservations, err := s.reservations.ListByRooms(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[uint][]models.Reservation, len(rooms))
	for _, r := range reservations {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}
	return byRoom, nil
}

func (s *HotelService) invalidateHotels(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CacheKeyApprovedHotels); err != nil {
		s.logger.Error("Không xoá được cache khách sạn: %v", err)
	}
}

// BookableRooms lọc phòng đang nhận đặt, đủ sức chứa và trống trong khoảng lưu trú (nếu có)
func BookableRooms(rooms []models.Room, reservationsByRoom map[uint][]models.Reservation, filter RoomFilter) []models.Room {
	bookable := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !room.Availability || room.Capacity < filter.Guests {
			continue
		}
		if filter.Stay != nil && !IsAvailable(reservationsByRoom[room.ID], *filter.Stay, 0) {
			continue
		}
		bookable = append(bookable, room)
	}
	return bookable
}

func minPrice(rooms []models.Room) int {
	lowest := rooms[0].Price
	for _, room := range rooms[1:] {
		if room.Price < lowest {
			lowest = room.Price
		}
	}
	return lowest
}
