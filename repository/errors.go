package repository

import (
	"errors"

	apperr "hotelbook/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Mã lỗi Postgres cần xử lý riêng
const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isRetryable cho biết transaction có thể chạy lại
func isRetryable(err error) bool {
	switch pgCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// translate chuyển lỗi gorm/Postgres thành AppError, giữ nguyên AppError sẵn có
func translate(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	if apperr.IsAppError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(notFoundMessage)
	}
	switch pgCode(err) {
	case pgExclusionViolation:
		return apperr.NewAppError(apperr.ErrCodeConflict, "Phòng đã được đặt trong khoảng thời gian này", err)
	case pgUniqueViolation:
		return apperr.NewAppError(apperr.ErrCodeConflict, "Dữ liệu đã tồn tại", err)
	}
	return apperr.NewAppError(apperr.ErrCodeDBError, "Lỗi cơ sở dữ liệu", err)
}
