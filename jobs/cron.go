package jobs

import (
	"context"
	"time"

	"hotelbook/services/logger"

	"github.com/robfig/cron/v3"
)

// PendingReminder nhắc các manager còn đặt phòng chờ duyệt
type PendingReminder interface {
	RemindPendingReservations(ctx context.Context) (int, error)
}

var pendingReminder PendingReminder

// SetPendingReminder thiết lập implementation cho PendingReminder
func SetPendingReminder(reminder PendingReminder) {
	pendingReminder = reminder
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, log logger.Logger) error {
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		RunPendingReminder(context.Background(), log)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

// RunPendingReminder chạy một lượt nhắc duyệt đặt phòng
func RunPendingReminder(ctx context.Context, log logger.Logger) {
	if pendingReminder == nil {
		log.Error("Lỗi: PendingReminder chưa được thiết lập")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	notified, err := pendingReminder.RemindPendingReservations(ctx)
	if err != nil {
		log.Error("Lỗi khi nhắc duyệt đặt phòng: %v", err)
		return
	}
	log.Info("Đã nhắc %d quản lý có đặt phòng chờ duyệt", notified)
}
