package memory

import (
	"context"

	"hotelbook/constants"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services"
)

type ReservationRepository struct {
	s *Store
}

// WithinTx giữ mutex suốt transaction và khôi phục đặt phòng nếu fn lỗi
func (r *ReservationRepository) WithinTx(ctx context.Context, fn func(tx services.BookingTx) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := cloneReservations(r.s.reservations)
	if err := fn(&bookingTx{s: r.s}); err != nil {
		r.s.reservations = snapshot
		return err
	}
	return nil
}

func (r *ReservationRepository) GetForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok || res.UserID != userID {
		return nil, apperr.NotFound("Không tìm thấy đặt phòng")
	}
	if room, err := r.s.roomWithHotel(res.RoomID); err == nil {
		res.Room = room
	}
	return &res, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return sortedValues(r.s.reservations, func(res models.Reservation) bool {
		return res.UserID == userID
	}), nil
}

func (r *ReservationRepository) ListByManager(ctx context.Context, managerID uint, status string) ([]models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return sortedValues(r.s.reservations, func(res models.Reservation) bool {
		if status != "" && res.Status != status {
			return false
		}
		return r.s.managerOf(res.RoomID) == managerID
	}), nil
}

func (r *ReservationRepository) ListByRooms(ctx context.Context, roomIDs []uint) ([]models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = true
	}
	return sortedValues(r.s.reservations, func(res models.Reservation) bool {
		return wanted[res.RoomID]
	}), nil
}

func (r *ReservationRepository) DeleteForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok || res.UserID != userID {
		return nil, apperr.NotFound("Không tìm thấy đặt phòng")
	}
	delete(r.s.reservations, id)
	return &res, nil
}

func (r *ReservationRepository) PendingCountsByManager(ctx context.Context) (map[uint]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[uint]int)
	for _, res := range r.s.reservations {
		if res.Status != constants.ReservationStatusPending {
			continue
		}
		if managerID := r.s.managerOf(res.RoomID); managerID != 0 {
			counts[managerID]++
		}
	}
	return counts, nil
}

// bookingTx chạy khi đã giữ mutex của Store
type bookingTx struct {
	s *Store
}

func (t *bookingTx) LockRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	return t.s.roomWithHotel(roomID)
}

func (t *bookingTx) ActiveReservations(ctx context.Context, roomID uint) ([]models.Reservation, error) {
	return sortedValues(t.s.reservations, func(res models.Reservation) bool {
		return res.RoomID == roomID && res.IsActive()
	}), nil
}

func (t *bookingTx) LockReservationForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	res, ok := t.s.reservations[id]
	if !ok || res.UserID != userID {
		return nil, apperr.NotFound("Không tìm thấy đặt phòng")
	}
	return &res, nil
}

func (t *bookingTx) LockReservationForManager(ctx context.Context, id, managerID uint) (*models.Reservation, error) {
	res, ok := t.s.reservations[id]
	if !ok || t.s.managerOf(res.RoomID) != managerID {
		return nil, apperr.NotFound("Không tìm thấy đặt phòng")
	}
	return &res, nil
}

func (t *bookingTx) CreateReservation(ctx context.Context, res *models.Reservation) error {
	if err := t.s.checkExclusion(res); err != nil {
		return err
	}
	now := t.s.now()
	res.ID = t.s.id()
	res.CreatedAt = now
	res.UpdatedAt = now
	stored := *res
	stored.Room, stored.User = nil, nil
	t.s.reservations[res.ID] = stored
	return nil
}

func (t *bookingTx) SaveReservation(ctx context.Context, res *models.Reservation) error {
	if _, ok := t.s.reservations[res.ID]; !ok {
		return apperr.NotFound("Không tìm thấy đặt phòng")
	}
	if err := t.s.checkExclusion(res); err != nil {
		return err
	}
	res.UpdatedAt = t.s.now()
	stored := *res
	stored.Room, stored.User = nil, nil
	t.s.reservations[res.ID] = stored
	return nil
}
