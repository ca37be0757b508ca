package controllers

import (
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	hotels  *services.HotelService
	support *services.SupportService
}

func NewAdminController(hotels *services.HotelService, support *services.SupportService) AdminController {
	return AdminController{
		hotels:  hotels,
		support: support,
	}
}

// GetPendingHotels godoc
// @Summary Khách sạn chờ duyệt
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/hotels/pending [get]
func (a AdminController) GetPendingHotels(c *gin.Context) {
	hotels, err := a.hotels.ListPending(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotels)
}

func (a AdminController) ApproveHotel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hotel, err := a.hotels.Approve(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

// RejectHotel xoá khách sạn bị từ chối cùng phòng và đặt phòng của nó
func (a AdminController) RejectHotel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := a.hotels.Reject(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetTickets godoc
// @Summary Tất cả yêu cầu hỗ trợ, mới nhất trước
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/support [get]
func (a AdminController) GetTickets(c *gin.Context) {
	tickets, err := a.support.ListAll(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tickets)
}

func (a AdminController) UpdateTicketStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ticket, err := a.support.UpdateStatus(c.Request.Context(), middleware.CurrentIdentity(c), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ticket)
}
