package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/models"
)

type DashboardService struct {
	hotels       HotelStore
	reservations ReservationStore
}

type DashboardServiceOptions struct {
	Hotels       HotelStore
	Reservations ReservationStore
}

func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	return &DashboardService{
		hotels:       opts.Hotels,
		reservations: opts.Reservations,
	}
}

// Manager tổng hợp số liệu khách sạn của manager. Manager chưa có khách sạn nhận dashboard rỗng.
func (s *DashboardService) Manager(ctx context.Context, identity Identity) (*dto.ManagerDashboard, error) {
	if !identity.IsManager() {
		return nil, apperr.Unauthorized("Chỉ quản lý khách sạn mới xem được dashboard")
	}

	empty := &dto.ManagerDashboard{ReservationsPerDay: dto.DailySeries{Labels: []string{}, Counts: []int{}}}
	hotel, err := s.hotels.GetByManager(ctx, identity.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListByRooms(ctx, roomIDs(hotel.Rooms))
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int)
	for _, r := range reservations {
		perDay[dayLabel(r.CheckIn)]++
	}

	return &dto.ManagerDashboard{
		TotalRooms:          len(hotel.Rooms),
		TotalReservations:   len(reservations),
		PendingReservations: countStatus(reservations, constants.ReservationStatusPending),
		TotalIncome:         approvedIncome(reservations),
		AvgPrice:            averagePrice(hotel.Rooms),
		ReservationsPerDay:  toSeries(perDay),
	}, nil
}

// Admin tổng hợp số liệu trên các khách sạn đã duyệt. Công suất theo ngày đếm từng đêm của đặt phòng đã duyệt.
func (s *DashboardService) Admin(ctx context.Context, identity Identity) (*dto.AdminDashboard, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới xem được dashboard")
	}

	hotels, err := s.hotels.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	var rooms []models.Room
	for _, hotel := range hotels {
		rooms = append(rooms, hotel.Rooms...)
	}

	reservations, err := s.reservations.ListByRooms(ctx, roomIDs(rooms))
	if err != nil {
		return nil, err
	}

	occupancy := make(map[string]int)
	approved := 0
	for i := range reservations {
		if reservations[i].Status != constants.ReservationStatusApproved {
			continue
		}
		approved++
		for _, day := range reservations[i].Stay().Days() {
			occupancy[dayLabel(day)]++
		}
	}

	return &dto.AdminDashboard{
		TotalHotels:         len(hotels),
		TotalRooms:          len(rooms),
		TotalReservations:   approved,
		PendingReservations: countStatus(reservations, constants.ReservationStatusPending),
		TotalIncome:         approvedIncome(reservations),
		AvgPrice:            averagePrice(rooms),
		Occupancy:           toSeries(occupancy),
	}, nil
}

func roomIDs(rooms []models.Room) []uint {
	ids := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}
	return ids
}

func countStatus(reservations []models.Reservation, status string) int {
	n := 0
	for _, r := range reservations {
		if r.Status == status {
			n++
		}
	}
	return n
}

func approvedIncome(reservations []models.Reservation) int {
	total := 0
	for _, r := range reservations {
		if r.Status == constants.ReservationStatusApproved {
			total += r.TotalPrice
		}
	}
	return total
}

// averagePrice làm tròn 2 chữ số thập phân
func averagePrice(rooms []models.Room) float64 {
	if len(rooms) == 0 {
		return 0
	}
	sum := 0
	for _, room := range rooms {
		sum += room.Price
	}
	return math.Round(float64(sum)/float64(len(rooms))*100) / 100
}

func toSeries(perDay map[string]int) dto.DailySeries {
	series := dto.DailySeries{
		Labels: make([]string, 0, len(perDay)),
		Counts: make([]int, 0, len(perDay)),
	}
	for label := range perDay {
		series.Labels = append(series.Labels, label)
	}
	sort.Strings(series.Labels)
	for _, label := range series.Labels {
		series.Counts = append(series.Counts, perDay[label])
	}
	return series
}

func dayLabel(t time.Time) string {
	return models.TruncateDay(t).Format(constants.DateLayout)
}
