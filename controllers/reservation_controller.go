package controllers

import (
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"
	"hotelbook/validator"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	bookings *services.BookingService
}

func NewReservationController(bookings *services.BookingService) ReservationController {
	return ReservationController{bookings: bookings}
}

// CreateReservation godoc
// @Summary Đặt phòng
// @Description Đặt phòng ở trạng thái pending. Trả 409 nếu phòng đã bị giữ trong khoảng ngày này.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ReservationRequest true "Phòng và ngày lưu trú"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations [post]
func (r ReservationController) CreateReservation(c *gin.Context) {
	input, ok := bindReservation(c)
	if !ok {
		return
	}

	reservation, err := r.bookings.Create(c.Request.Context(), middleware.CurrentIdentity(c), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, reservation)
}

// GetReservations godoc
// @Summary Đặt phòng của người dùng đang đăng nhập
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reservations [get]
func (r ReservationController) GetReservations(c *gin.Context) {
	reservations, err := r.bookings.List(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	page, limit := pageParams(c)
	items, pagination := dto.Paginate(reservations, page, limit)
	response.SuccessWithPagination(c, items, pagination.Page, pagination.Limit, pagination.Total)
}

func (r ReservationController) GetReservationDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := r.bookings.Get(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reservation)
}

// UpdateReservation godoc
// @Summary Đổi phòng hoặc ngày; đặt phòng quay về pending
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID đặt phòng"
// @Param body body dto.ReservationRequest true "Phòng và ngày lưu trú mới"
// @Success 200 {object} response.Response
// @Router /reservations/{id} [put]
func (r ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindReservation(c)
	if !ok {
		return
	}

	reservation, err := r.bookings.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reservation)
}

func (r ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := r.bookings.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetManagerReservations godoc
// @Summary Đặt phòng của khách sạn do manager quản lý
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | approved | rejected"
// @Success 200 {object} response.Response
// @Router /manager/reservations [get]
func (r ReservationController) GetManagerReservations(c *gin.Context) {
	var query dto.ReservationStatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservations, err := r.bookings.ListForManager(c.Request.Context(), middleware.CurrentIdentity(c), query.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reservations)
}

// ApproveReservation godoc
// @Summary Manager duyệt đặt phòng
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID đặt phòng"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /manager/reservations/{id}/approve [put]
func (r ReservationController) ApproveReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := r.bookings.Approve(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reservation)
}

func (r ReservationController) RejectReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := r.bookings.Reject(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reservation)
}

func bindReservation(c *gin.Context) (services.ReservationInput, bool) {
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return services.ReservationInput{}, false
	}

	stay, err := validator.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return services.ReservationInput{}, false
	}
	return services.ReservationInput{RoomID: req.RoomID, Stay: stay}, true
}
