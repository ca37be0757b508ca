package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperr "hotelbook/errors"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x"))

	err := translate(gorm.ErrRecordNotFound, "Không tìm thấy phòng")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, "Không tìm thấy phòng", apperr.GetAppError(err).Message)

	err = translate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgExclusionViolation}), "x")
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	err = translate(&pgconn.PgError{Code: pgUniqueViolation}, "x")
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	err = translate(errors.New("connection reset"), "x")
	assert.Equal(t, apperr.ErrCodeDBError, apperr.GetAppError(err).Code)
	assert.False(t, errors.Is(err, apperr.ErrConflict))
}

func TestTranslateKeepsAppError(t *testing.T) {
	original := apperr.InvalidDateRange("Ngày sai")
	assert.Same(t, original, translate(original, "x"))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: pgSerializationFailure}))
	assert.True(t, isRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgDeadlockDetected})))
	assert.False(t, isRetryable(&pgconn.PgError{Code: pgExclusionViolation}))
	assert.False(t, isRetryable(errors.New("boom")))
	assert.False(t, isRetryable(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}
