package controllers

import (
	"strconv"

	"hotelbook/response"

	"github.com/gin-gonic/gin"
)

// parseID đọc tham số :id, trả false và ghi response 400 nếu không hợp lệ
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// pageParams đọc page/limit từ query, mặc định trang 1, 10 bản ghi
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	return page, limit
}
