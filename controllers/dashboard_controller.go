package controllers

import (
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboards *services.DashboardService
}

func NewDashboardController(dashboards *services.DashboardService) DashboardController {
	return DashboardController{dashboards: dashboards}
}

// ManagerDashboard godoc
// @Summary Số liệu khách sạn của manager
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /manager/dashboard [get]
func (d DashboardController) ManagerDashboard(c *gin.Context) {
	data, err := d.dashboards.Manager(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, data)
}

// AdminDashboard godoc
// @Summary Số liệu toàn hệ thống trên các khách sạn đã duyệt
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/data [get]
func (d DashboardController) AdminDashboard(c *gin.Context) {
	data, err := d.dashboards.Admin(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, data)
}
