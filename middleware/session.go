package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader    = "X-Session-ID"
	ContextSessionID = "sessionId"
)

// SessionMiddleware tạo session id nếu client chưa gửi, dùng để nhớ bộ lọc tìm kiếm gần nhất
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		c.Set(ContextSessionID, sessionID)
		c.Writer.Header().Set(SessionHeader, sessionID)

		c.Next()
	}
}
