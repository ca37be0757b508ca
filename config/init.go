package config

import (
	"slices"

	"hotelbook/metrics"
	"hotelbook/middleware"
	"hotelbook/services/logger"
	"hotelbook/services/notification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

func InitApp(cfg *Config) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.SessionHeader)
	configCors.AddExposeHeaders(middleware.SessionHeader)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	// không cấu hình CORS_ORIGINS thì cho phép mọi origin
	configCors.AllowOriginFunc = func(origin string) bool {
		if len(cfg.CorsOrigins) == 0 {
			return true
		}
		return slices.Contains(cfg.CorsOrigins, origin)
	}
	router.Use(cors.New(configCors))
	router.Use(metrics.Middleware())

	router.SetTrustedProxies(nil)

	m := melody.New()

	c := cron.New()

	return router, m, c
}

// InitWebSocket mở /ws; session có token hợp lệ được gắn id người dùng để nhận thông báo riêng
func InitWebSocket(router *gin.Engine, m *melody.Melody, parser middleware.TokenParser, log logger.Logger) {
	router.GET("/ws", middleware.OptionalAuth(parser), func(c *gin.Context) {
		keys := map[string]interface{}{}
		if userID := c.GetUint(middleware.ContextUserID); userID != 0 {
			keys[notification.SessionUserKey] = userID
		}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			log.Error("WebSocket error: %v", err)
		}
	})
	log.Info("WebSocket initialized successfully")
}
