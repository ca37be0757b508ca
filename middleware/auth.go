package middleware

import (
	"strings"

	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

// Các key lưu thông tin người dùng trong gin.Context
const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
	ContextEmail    = "email"
)

// AccessTokenCookie là tên cookie chứa access token
const AccessTokenCookie = "access_token"

// TokenParser đọc thông tin người dùng từ access token
type TokenParser interface {
	ParseToken(tokenString string) (services.UserInfo, error)
}

// AuthMiddleware xử lý authentication, nếu truyền userTypes thì chỉ cho phép các loại tài khoản đó
func AuthMiddleware(parser TokenParser, userTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		info, err := parser.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(userTypes) > 0 && !hasUserType(info.UserType, userTypes) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		setUser(c, info)
		c.Next()
	}
}

// OptionalAuth gắn thông tin người dùng nếu token hợp lệ, không chặn request
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if info, err := parser.ParseToken(tokenString); err == nil {
				setUser(c, info)
			}
		}
		c.Next()
	}
}

// CurrentIdentity lấy danh tính người gọi đã được AuthMiddleware gắn vào context
func CurrentIdentity(c *gin.Context) services.Identity {
	return services.Identity{
		UserID:   c.GetUint(ContextUserID),
		UserType: c.GetString(ContextUserType),
		Email:    c.GetString(ContextEmail),
	}
}

// ErrorHandler trả response cho lỗi cuối cùng được gắn qua c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func hasUserType(userType string, allowed []string) bool {
	for _, t := range allowed {
		if t == userType {
			return true
		}
	}
	return false
}

func setUser(c *gin.Context, info services.UserInfo) {
	c.Set(ContextUserID, info.UserId)
	c.Set(ContextUserType, info.UserType)
	c.Set(ContextEmail, info.Email)
}
