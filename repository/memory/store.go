// Package memory là store trong bộ nhớ cho test và chạy thử không cần Postgres.
package memory

import (
	"maps"
	"sort"
	"sync"
	"time"

	apperr "hotelbook/errors"
	"hotelbook/models"
)

// Store giữ toàn bộ dữ liệu sau một mutex. Các repository con dùng chung Store.
type Store struct {
	mu           sync.Mutex
	nextID       uint
	users        map[uint]models.User
	hotels       map[uint]models.Hotel
	rooms        map[uint]models.Room
	reservations map[uint]models.Reservation
	tickets      map[uint]models.SupportTicket
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uint]models.User),
		hotels:       make(map[uint]models.Hotel),
		rooms:        make(map[uint]models.Room),
		reservations: make(map[uint]models.Reservation),
		tickets:      make(map[uint]models.SupportTicket),
		now:          time.Now,
	}
}

func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }
func (s *Store) Rooms() *RoomRepository               { return &RoomRepository{s: s} }
func (s *Store) Hotels() *HotelRepository             { return &HotelRepository{s: s} }
func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Tickets() *TicketRepository           { return &TicketRepository{s: s} }

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) roomWithHotel(id uint) (*models.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, apperr.NotFound("Không tìm thấy phòng")
	}
	if hotel, ok := s.hotels[room.HotelID]; ok {
		room.Hotel = &hotel
	}
	return &room, nil
}

func (s *Store) managerOf(roomID uint) uint {
	room, ok := s.rooms[roomID]
	if !ok {
		return 0
	}
	return s.hotels[room.HotelID].ManagerID
}

// checkExclusion giữ bất biến không có hai đặt phòng đang hoạt động giao nhau trên cùng phòng
func (s *Store) checkExclusion(r *models.Reservation) error {
	if !r.IsActive() {
		return nil
	}
	for _, other := range s.reservations {
		if other.ID == r.ID || other.RoomID != r.RoomID || !other.IsActive() {
			continue
		}
		if other.Stay().Overlaps(r.Stay()) {
			return apperr.Conflict("Phòng đã được đặt trong khoảng thời gian này")
		}
	}
	return nil
}

func (s *Store) deleteRoomLocked(id uint) {
	delete(s.rooms, id)
	for rid, r := range s.reservations {
		if r.RoomID == id {
			delete(s.reservations, rid)
		}
	}
}

func (s *Store) deleteHotelLocked(id uint) {
	delete(s.hotels, id)
	for rid, room := range s.rooms {
		if room.HotelID == id {
			s.deleteRoomLocked(rid)
		}
	}
}

func sortedValues[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func cloneReservations(m map[uint]models.Reservation) map[uint]models.Reservation {
	return maps.Clone(m)
}
