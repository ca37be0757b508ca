package controllers

import (
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{users: users}
}

// GetUsers godoc
// @Summary Danh sách người dùng (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Trang"
// @Param limit query int false "Số bản ghi mỗi trang"
// @Success 200 {object} response.Response
// @Router /users [get]
func (u UserController) GetUsers(c *gin.Context) {
	users, err := u.users.List(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	result := make([]dto.UserLoginResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}

	page, limit := pageParams(c)
	items, pagination := dto.Paginate(result, page, limit)
	response.SuccessWithPagination(c, items, pagination.Page, pagination.Limit, pagination.Total)
}

func (u UserController) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := u.users.Get(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toUserResponse(user))
}

func (u UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := u.users.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toUserResponse(user))
}

func (u UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := u.users.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
