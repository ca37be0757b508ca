package notification

import (
	"fmt"

	"hotelbook/models"

	"github.com/olahol/melody"
)

// SessionUserKey là key lưu id người dùng trên mỗi websocket session
const SessionUserKey = "userID"

type Service interface {
	SendMessage(message string) error
	SendToUser(userID uint, message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// SendToUser chỉ gửi tới các session đã đăng nhập bằng userID
func (s *MelodyService) SendToUser(userID uint, message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter([]byte(message), func(session *melody.Session) bool {
		value, ok := session.Get(SessionUserKey)
		if !ok {
			return false
		}
		id, ok := value.(uint)
		return ok && id == userID
	})
}

// Nop bỏ qua mọi thông báo
type Nop struct{}

func (Nop) SendMessage(message string) error             { return nil }
func (Nop) SendToUser(userID uint, message string) error { return nil }

// Các loại sự kiện đặt phòng
const (
	EventReservationCreated  = "created"
	EventReservationUpdated  = "updated"
	EventReservationApproved = "approved"
	EventReservationRejected = "rejected"
	EventPendingReminder     = "pending_reminder"
)

type MessageBuilder struct {
	event       string
	reservation *models.Reservation
	pending     int
}

func NewMessageBuilder(event string) *MessageBuilder {
	return &MessageBuilder{event: event}
}

func (b *MessageBuilder) WithReservation(r *models.Reservation) *MessageBuilder {
	b.reservation = r
	return b
}

func (b *MessageBuilder) WithPendingCount(n int) *MessageBuilder {
	b.pending = n
	return b
}

func (b *MessageBuilder) Build() string {
	if b.event == EventPendingReminder {
		return fmt.Sprintf("🔔 Bạn có %d đặt phòng đang chờ duyệt.", b.pending)
	}
	r := b.reservation
	if r == nil {
		return "🔔 Có cập nhật đặt phòng."
	}
	stay := r.Stay()
	dates := fmt.Sprintf("%s → %s", stay.CheckIn.Format("2006-01-02"), stay.CheckOut.Format("2006-01-02"))
	switch b.event {
	case EventReservationCreated:
		return fmt.Sprintf("🔔 Đặt phòng mới #%d cho phòng %d (%s) đang chờ duyệt.", r.ID, r.RoomID, dates)
	case EventReservationUpdated:
		return fmt.Sprintf("🔔 Đặt phòng #%d cho phòng %d đã được khách sửa (%s), cần duyệt lại.", r.ID, r.RoomID, dates)
	case EventReservationApproved:
		return fmt.Sprintf("✅ Đặt phòng #%d (%s) đã được duyệt.", r.ID, dates)
	case EventReservationRejected:
		return fmt.Sprintf("❌ Đặt phòng #%d (%s) đã bị từ chối.", r.ID, dates)
	default:
		return fmt.Sprintf("🔔 Đặt phòng #%d: %s.", r.ID, b.event)
	}
}
