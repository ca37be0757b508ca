package controllers

import (
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{rooms: rooms}
}

func (r RoomController) GetRooms(c *gin.Context) {
	rooms, err := r.rooms.ListAvailable(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	page, limit := pageParams(c)
	items, pagination := dto.Paginate(toRoomResponses(rooms), page, limit)
	response.SuccessWithPagination(c, items, pagination.Page, pagination.Limit, pagination.Total)
}

func (r RoomController) GetRoomDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := r.rooms.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// GetBookedDates godoc
// @Summary Các ngày phòng đã bị giữ (pending hoặc approved), không gồm ngày trả phòng
// @Tags rooms
// @Produce json
// @Param id path int true "ID phòng"
// @Success 200 {object} response.Response
// @Router /rooms/{id}/booked-dates [get]
func (r RoomController) GetBookedDates(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	dates, err := r.rooms.BookedDates(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.BookedDatesResponse{RoomID: id, Dates: dates})
}

// CreateRoom godoc
// @Summary Manager thêm phòng vào khách sạn của mình
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RoomRequest true "Thông tin phòng"
// @Success 201 {object} response.Response
// @Router /rooms [post]
func (r RoomController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room, err := r.rooms.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, toRoomResponse(*room))
}

func (r RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room, err := r.rooms.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toRoomResponse(*room))
}

func (r RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := r.rooms.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
