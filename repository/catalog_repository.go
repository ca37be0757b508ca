package repository

import (
	"context"

	apperr "hotelbook/errors"
	"hotelbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error, roomNotFound)
}

func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).
		Model(room).
		Select("room_type", "price", "capacity", "availability").
		Updates(room).Error
	return translate(err, roomNotFound)
}

// Delete xoá phòng, đặt phòng bị xoá theo ON DELETE CASCADE
func (r *RoomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return translate(result.Error, roomNotFound)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(roomNotFound)
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error; err != nil {
		return nil, translate(err, roomNotFound)
	}
	return &room, nil
}

func (r *RoomRepository) GetForManager(ctx context.Context, id, managerID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.id = ? AND hotels.manager_id = ?", id, managerID).
		First(&room).Error
	if err != nil {
		return nil, translate(err, roomNotFound)
	}
	return &room, nil
}

func (r *RoomRepository) ListAvailable(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("availability = ?", true).
		Order("id").
		Find(&rooms).Error
	return rooms, translate(err, roomNotFound)
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("id").
		Find(&rooms).Error
	return rooms, translate(err, roomNotFound)
}

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create dựa vào unique index trên manager_id để mỗi manager chỉ có một khách sạn
func (r *HotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(hotel).Error
	if isUniqueViolation(err) {
		return apperr.NewAppError(apperr.ErrCodeConflict, "Quản lý đã có khách sạn", err)
	}
	return translate(err, hotelNotFound)
}

func (r *HotelRepository) Update(ctx context.Context, hotel *models.Hotel) error {
	err := r.db.WithContext(ctx).
		Model(hotel).
		Select("name", "description", "location", "phone_number", "email", "is_approved", "image_url", "gallery").
		Updates(hotel).Error
	return translate(err, hotelNotFound)
}

func (r *HotelRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Hotel{}, id)
	if result.Error != nil {
		return translate(result.Error, hotelNotFound)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(hotelNotFound)
	}
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&hotel, id).Error
	if err != nil {
		return nil, translate(err, hotelNotFound)
	}
	return &hotel, nil
}

func (r *HotelRepository) GetByManager(ctx context.Context, managerID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("manager_id = ?", managerID).
		First(&hotel).Error
	if err != nil {
		return nil, translate(err, hotelNotFound)
	}
	return &hotel, nil
}

func (r *HotelRepository) ListApproved(ctx context.Context) ([]models.Hotel, error) {
	return r.list(ctx, true)
}

func (r *HotelRepository) ListPending(ctx context.Context) ([]models.Hotel, error) {
	return r.list(ctx, false)
}

func (r *HotelRepository) list(ctx context.Context, approved bool) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("is_approved = ?", approved).
		Order("id").
		Find(&hotels).Error
	return hotels, translate(err, hotelNotFound)
}
