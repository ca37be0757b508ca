package controllers

import (
	"time"

	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/models"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth         *services.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthController(auth *services.AuthService, tokenTTL time.Duration, secureCookie bool) AuthController {
	return AuthController{
		auth:         auth,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// Register godoc
// @Summary Đăng ký tài khoản khách hàng hoặc quản lý
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterInput true "Thông tin đăng ký"
// @Success 201 {object} response.Response
// @Router /auth/register [post]
func (a AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := a.auth.Register(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, toUserResponse(user))
}

// Login godoc
// @Summary Đăng nhập bằng email và mật khẩu
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginInput true "Email và mật khẩu"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := a.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	a.setTokenCookie(c, token)
	response.Success(c, dto.LoginResponse{
		UserInfo:    toUserResponse(user),
		AccessToken: token,
	})
}

// LoginGoogle godoc
// @Summary Đăng nhập bằng Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginInput true "Google ID token"
// @Success 200 {object} response.Response
// @Router /auth/google [post]
func (a AuthController) LoginGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := a.auth.LoginWithGoogle(c.Request.Context(), input.TokenId)
	if err != nil {
		response.FromError(c, err)
		return
	}

	a.setTokenCookie(c, token)
	response.Success(c, dto.LoginResponse{
		UserInfo:    toUserResponse(user),
		AccessToken: token,
	})
}

func (a AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", a.secureCookie, true)
	response.Success(c, nil)
}

// Me godoc
// @Summary Thông tin người dùng đang đăng nhập
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/me [get]
func (a AuthController) Me(c *gin.Context) {
	user, err := a.auth.Me(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toUserResponse(user))
}

func (a AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AccessTokenCookie, token, int(a.tokenTTL.Seconds()), "/", "", a.secureCookie, true)
}

func toUserResponse(user *models.User) dto.UserLoginResponse {
	return dto.UserLoginResponse{
		UserID:      user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		UserType:    user.UserType,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
