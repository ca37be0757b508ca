package controllers

import (
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type SupportController struct {
	support *services.SupportService
}

func NewSupportController(support *services.SupportService) SupportController {
	return SupportController{support: support}
}

func (s SupportController) GetMyTickets(c *gin.Context) {
	tickets, err := s.support.ListMine(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tickets)
}

// CreateTicket godoc
// @Summary Gửi yêu cầu hỗ trợ
// @Tags support
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TicketRequest true "Tiêu đề và nội dung"
// @Success 201 {object} response.Response
// @Router /support [post]
func (s SupportController) CreateTicket(c *gin.Context) {
	var req dto.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ticket, err := s.support.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, ticket)
}
