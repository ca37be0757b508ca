package response

import (
	"errors"
	"net/http"

	apperr "hotelbook/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

const (
	messOK       = "Thành công"
	messCreated  = "Tạo thành công"
	messServer   = "Lỗi server"
	messAuth     = "Chưa xác thực"
	messForbid   = "Không có quyền truy cập"
	messNotFound = "Không tìm thấy"
	messConflict = "Xung đột dữ liệu"
)

func ok(c *gin.Context, status int, mess string, data interface{}, p *Pagination) {
	c.JSON(status, Response{Code: 1, Mess: mess, Data: data, Pagination: p})
}

// fail ghi response lỗi, code luôn là 0
func fail(c *gin.Context, status int, mess string) {
	c.JSON(status, Response{Code: 0, Mess: mess})
}

func Success(c *gin.Context, data interface{}) {
	ok(c, http.StatusOK, messOK, data, nil)
}

// Created dùng cho các API tạo mới (201)
func Created(c *gin.Context, data interface{}) {
	ok(c, http.StatusCreated, messCreated, data, nil)
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	ok(c, http.StatusOK, messOK, data, &Pagination{Page: page, Limit: limit, Total: total})
}

func ServerError(c *gin.Context) { fail(c, http.StatusInternalServerError, messServer) }

func Unauthorized(c *gin.Context) { fail(c, http.StatusUnauthorized, messAuth) }

func Forbidden(c *gin.Context) { fail(c, http.StatusForbidden, messForbid) }

func NotFound(c *gin.Context) { fail(c, http.StatusNotFound, messNotFound) }

func BadRequest(c *gin.Context, message string) { fail(c, http.StatusBadRequest, message) }

// Conflict trả 409, message rỗng thì dùng câu mặc định
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = messConflict
	}
	fail(c, http.StatusConflict, message)
}

// FromError chuyển lỗi nghiệp vụ thành response tương ứng
func FromError(c *gin.Context, err error) {
	message := ""
	if appErr := apperr.GetAppError(err); appErr != nil {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, apperr.ErrInvalidDateRange), errors.Is(err, apperr.ErrValidation):
		if message == "" {
			message = "Dữ liệu không hợp lệ"
		}
		BadRequest(c, message)
	case errors.Is(err, apperr.ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, apperr.ErrForbidden):
		Forbidden(c)
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(c)
	case errors.Is(err, apperr.ErrConflict):
		Conflict(c, message)
	default:
		ServerError(c)
	}
}
