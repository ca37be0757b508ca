package repository

import (
	"context"

	"hotelbook/constants"
	"hotelbook/metrics"
	"hotelbook/models"
	"hotelbook/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxTxAttempts            = 3
	reservationNotFound      = "Không tìm thấy đặt phòng"
	roomNotFound             = "Không tìm thấy phòng"
	hotelNotFound            = "Không tìm thấy khách sạn"
	userNotFound             = "Không tìm thấy người dùng"
	ticketNotFound           = "Không tìm thấy yêu cầu hỗ trợ"
	managedRoomsCondition    = "room_id IN (?)"
	activeReservationsFilter = "status IN ?"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// WithinTx chạy fn trong transaction, thử lại tối đa maxTxAttempts lần khi gặp 40001/40P01
func (r *ReservationRepository) WithinTx(ctx context.Context, fn func(tx services.BookingTx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&bookingTx{db: tx})
		})
		if !isRetryable(err) || ctx.Err() != nil {
			break
		}
		metrics.TxRetries.Inc()
	}
	return translate(err, reservationNotFound)
}

func (r *ReservationRepository) GetForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Room.Hotel").
		Where("id = ? AND user_id = ?", id, userID).
		First(&reservation).Error
	if err != nil {
		return nil, translate(err, reservationNotFound)
	}
	return &reservation, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Room.Hotel").
		Where("user_id = ?", userID).
		Order("check_in, id").
		Find(&reservations).Error
	return reservations, translate(err, reservationNotFound)
}

func (r *ReservationRepository) ListByManager(ctx context.Context, managerID uint, status string) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Preload("Room").
		Preload("User").
		Where(managedRoomsCondition, managedRoomIDs(r.db, managerID))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	err := query.Order("check_in, id").Find(&reservations).Error
	return reservations, translate(err, reservationNotFound)
}

func (r *ReservationRepository) ListByRooms(ctx context.Context, roomIDs []uint) ([]models.Reservation, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("room_id IN ?", roomIDs).
		Order("check_in, id").
		Find(&reservations).Error
	return reservations, translate(err, reservationNotFound)
}

func (r *ReservationRepository) DeleteForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&reservation).Error
	if err != nil {
		return nil, translate(err, reservationNotFound)
	}
	if reservation.ID == 0 {
		return nil, translate(gorm.ErrRecordNotFound, reservationNotFound)
	}
	return &reservation, nil
}

func (r *ReservationRepository) PendingCountsByManager(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		ManagerID uint
		Count     int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("hotels.manager_id AS manager_id, COUNT(*) AS count").
		Joins("JOIN rooms ON rooms.id = reservations.room_id").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("reservations.status = ?", constants.ReservationStatusPending).
		Group("hotels.manager_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, reservationNotFound)
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.ManagerID] = row.Count
	}
	return counts, nil
}

// managedRoomIDs là subquery id các phòng thuộc khách sạn của manager
func managedRoomIDs(db *gorm.DB, managerID uint) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Room{}).
		Select("rooms.id").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("hotels.manager_id = ?", managerID)
}

type bookingTx struct {
	db *gorm.DB
}

// LockRoom khoá dòng phòng bằng SELECT ... FOR UPDATE rồi nạp khách sạn riêng,
// vì FOR UPDATE không dùng chung được với preload.
func (t *bookingTx) LockRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error
	if err != nil {
		return nil, translate(err, roomNotFound)
	}

	var hotel models.Hotel
	if err := t.db.WithContext(ctx).First(&hotel, room.HotelID).Error; err != nil {
		return nil, translate(err, hotelNotFound)
	}
	room.Hotel = &hotel
	return &room, nil
}

func (t *bookingTx) ActiveReservations(ctx context.Context, roomID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := t.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where(activeReservationsFilter, models.ActiveStatuses()).
		Find(&reservations).Error
	return reservations, translate(err, reservationNotFound)
}

func (t *bookingTx) LockReservationForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&reservation).Error
	if err != nil {
		return nil, translate(err, reservationNotFound)
	}
	return &reservation, nil
}

func (t *bookingTx) LockReservationForManager(ctx context.Context, id, managerID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Where(managedRoomsCondition, managedRoomIDs(t.db, managerID)).
		First(&reservation).Error
	if err != nil {
		return nil, translate(err, reservationNotFound)
	}
	return &reservation, nil
}

func (t *bookingTx) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(reservation).Error
}

func (t *bookingTx) SaveReservation(ctx context.Context, reservation *models.Reservation) error {
	return t.db.WithContext(ctx).
		Model(reservation).
		Select("room_id", "check_in", "check_out", "total_price", "status", "updated_at").
		Updates(reservation).Error
}
