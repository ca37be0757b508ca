package memory

import (
	"context"
	"sort"
	"strings"

	apperr "hotelbook/errors"
	"hotelbook/models"
)

type RoomRepository struct {
	s *Store
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.hotels[room.HotelID]; !ok {
		return apperr.NotFound("Không tìm thấy khách sạn")
	}
	room.ID = r.s.id()
	room.CreatedAt = r.s.now()
	stored := *room
	stored.Hotel, stored.Reservations = nil, nil
	r.s.rooms[room.ID] = stored
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[room.ID]; !ok {
		return apperr.NotFound("Không tìm thấy phòng")
	}
	stored := *room
	stored.Hotel, stored.Reservations = nil, nil
	r.s.rooms[room.ID] = stored
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return apperr.NotFound("Không tìm thấy phòng")
	}
	r.s.deleteRoomLocked(id)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.roomWithHotel(id)
}

func (r *RoomRepository) GetForManager(ctx context.Context, id, managerID uint) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, err := r.s.roomWithHotel(id)
	if err != nil {
		return nil, err
	}
	if room.Hotel == nil || room.Hotel.ManagerID != managerID {
		return nil, apperr.NotFound("Không tìm thấy phòng")
	}
	return room, nil
}

func (r *RoomRepository) ListAvailable(ctx context.Context) ([]models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return sortedValues(r.s.rooms, func(room models.Room) bool {
		return room.Availability
	}), nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return sortedValues(r.s.rooms, func(room models.Room) bool {
		return room.HotelID == hotelID
	}), nil
}

type HotelRepository struct {
	s *Store
}

func (r *HotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.hotels {
		if h.ManagerID == hotel.ManagerID {
			return apperr.Conflict("Quản lý đã có khách sạn")
		}
	}
	hotel.ID = r.s.id()
	hotel.CreatedAt = r.s.now()
	stored := *hotel
	stored.Manager, stored.Rooms = nil, nil
	r.s.hotels[hotel.ID] = stored
	return nil
}

func (r *HotelRepository) Update(ctx context.Context, hotel *models.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.hotels[hotel.ID]; !ok {
		return apperr.NotFound("Không tìm thấy khách sạn")
	}
	stored := *hotel
	stored.Manager, stored.Rooms = nil, nil
	r.s.hotels[hotel.ID] = stored
	return nil
}

func (r *HotelRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.hotels[id]; !ok {
		return apperr.NotFound("Không tìm thấy khách sạn")
	}
	r.s.deleteHotelLocked(id)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	hotel, ok := r.s.hotels[id]
	if !ok {
		return nil, apperr.NotFound("Không tìm thấy khách sạn")
	}
	r.withRooms(&hotel)
	return &hotel, nil
}

func (r *HotelRepository) GetByManager(ctx context.Context, managerID uint) (*models.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, hotel := range r.s.hotels {
		if hotel.ManagerID == managerID {
			r.withRooms(&hotel)
			return &hotel, nil
		}
	}
	return nil, apperr.NotFound("Không tìm thấy khách sạn")
}

func (r *HotelRepository) ListApproved(ctx context.Context) ([]models.Hotel, error) {
	return r.list(func(h models.Hotel) bool { return h.IsApproved })
}

func (r *HotelRepository) ListPending(ctx context.Context) ([]models.Hotel, error) {
	return r.list(func(h models.Hotel) bool { return !h.IsApproved })
}

func (r *HotelRepository) list(keep func(models.Hotel) bool) ([]models.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	hotels := sortedValues(r.s.hotels, keep)
	for i := range hotels {
		r.withRooms(&hotels[i])
	}
	return hotels, nil
}

func (r *HotelRepository) withRooms(hotel *models.Hotel) {
	hotel.Rooms = sortedValues(r.s.rooms, func(room models.Room) bool {
		return room.HotelID == hotel.ID
	})
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperr.NewAppError(apperr.ErrCodeUserExists, "Email đã được sử dụng", nil)
		}
	}
	now := r.s.now()
	user.ID = r.s.id()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return apperr.NotFound("Không tìm thấy người dùng")
	}
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return apperr.NotFound("Không tìm thấy người dùng")
	}
	delete(r.s.users, id)
	for hid, hotel := range r.s.hotels {
		if hotel.ManagerID == id {
			r.s.deleteHotelLocked(hid)
		}
	}
	for rid, res := range r.s.reservations {
		if res.UserID == id {
			delete(r.s.reservations, rid)
		}
	}
	for tid, ticket := range r.s.tickets {
		if ticket.UserID == id {
			delete(r.s.tickets, tid)
		}
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("Không tìm thấy người dùng")
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("Không tìm thấy người dùng")
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return sortedValues(r.s.users, nil), nil
}

type TicketRepository struct {
	s *Store
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.SupportTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket.ID = r.s.id()
	ticket.CreatedAt = r.s.now()
	stored := *ticket
	stored.User = nil
	r.s.tickets[ticket.ID] = stored
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *models.SupportTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tickets[ticket.ID]; !ok {
		return apperr.NotFound("Không tìm thấy yêu cầu hỗ trợ")
	}
	stored := *ticket
	stored.User = nil
	r.s.tickets[ticket.ID] = stored
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*models.SupportTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket, ok := r.s.tickets[id]
	if !ok {
		return nil, apperr.NotFound("Không tìm thấy yêu cầu hỗ trợ")
	}
	return &ticket, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return sortedValues(r.s.tickets, func(t models.SupportTicket) bool {
		return t.UserID == userID
	}), nil
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]models.SupportTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tickets := sortedValues(r.s.tickets, nil)
	sort.SliceStable(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].ID > tickets[j].ID
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	for i := range tickets {
		if user, ok := r.s.users[tickets[i].UserID]; ok {
			tickets[i].User = &user
		}
	}
	return tickets, nil
}
