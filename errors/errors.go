package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPhone    ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"

	// Lookup errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidStatus ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Booking errors
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeConflict         ErrorCode = "CONFLICT"
)

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
)

// sentinels ánh xạ mã lỗi về nhóm lỗi dùng ở biên request
var sentinels = map[ErrorCode]error{
	ErrCodeUnauthorized:     ErrUnauthorized,
	ErrCodeInvalidToken:     ErrUnauthorized,
	ErrCodeMissingToken:     ErrUnauthorized,
	ErrCodeInvalidPassword:  ErrUnauthorized,
	ErrCodeForbidden:        ErrForbidden,
	ErrCodeNotFound:         ErrNotFound,
	ErrCodeUserExists:       ErrConflict,
	ErrCodeConflict:         ErrConflict,
	ErrCodeInvalidDateRange: ErrInvalidDateRange,
	ErrCodeValidation:       ErrValidation,
	ErrCodeRequiredField:    ErrValidation,
	ErrCodeInvalidFormat:    ErrValidation,
	ErrCodeInvalidEmail:     ErrValidation,
	ErrCodeInvalidPhone:     ErrValidation,
	ErrCodeInvalidRole:      ErrValidation,
	ErrCodeInvalidStatus:    ErrValidation,
	ErrCodeInvalidAmount:    ErrValidation,
}

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is cho phép errors.Is(err, ErrConflict) ... dựa trên mã lỗi
func (e *AppError) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, nil)
}

func Validation(message string, err error) *AppError {
	return NewAppError(ErrCodeValidation, message, err)
}

func InvalidDateRange(message string) *AppError {
	return NewAppError(ErrCodeInvalidDateRange, message, nil)
}
