package routes

import (
	"net/http"
	"time"

	"hotelbook/constants"
	"hotelbook/controllers"
	"hotelbook/metrics"
	middlewares "hotelbook/middleware"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

// Services là các service đã khởi tạo, được routes gắn vào controller
type Services struct {
	Tokens       *services.TokenManager
	Auth         *services.AuthService
	Users        *services.UserService
	Hotels       *services.HotelService
	Rooms        *services.RoomService
	Bookings     *services.BookingService
	Dashboards   *services.DashboardService
	Support      *services.SupportService
	SecureCookie bool
}

func SetupRoutes(router *gin.Engine, svc Services) {
	authController := controllers.NewAuthController(svc.Auth, svc.Tokens.TTL(), svc.SecureCookie)
	userController := controllers.NewUserController(svc.Users)
	hotelController := controllers.NewHotelController(svc.Hotels)
	roomController := controllers.NewRoomController(svc.Rooms)
	reservationController := controllers.NewReservationController(svc.Bookings)
	dashboardController := controllers.NewDashboardController(svc.Dashboards)
	adminController := controllers.NewAdminController(svc.Hotels, svc.Support)
	supportController := controllers.NewSupportController(svc.Support)

	auth := middlewares.AuthMiddleware(svc.Tokens)
	manager := middlewares.AuthMiddleware(svc.Tokens, constants.UserTypeManager)
	admin := middlewares.AuthMiddleware(svc.Tokens, constants.UserTypeAdmin)
	// 5 request/giây, tối đa 10 liên tiếp cho mỗi IP
	authLimit := middlewares.RateLimit(middlewares.NewIPRateLimiter(rate.Every(200*time.Millisecond), 10))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authLimit, authController.Register)
	v1.POST("/auth/login", authLimit, authController.Login)
	v1.POST("/auth/google", authLimit, authController.LoginGoogle)
	v1.DELETE("/auth/logout", authController.Logout)
	v1.GET("/auth/me", auth, authController.Me)

	v1.GET("/users", admin, userController.GetUsers)
	v1.GET("/users/:id", admin, userController.GetUserByID)
	v1.PUT("/users/:id", admin, userController.UpdateUser)
	v1.DELETE("/users/:id", admin, userController.DeleteUser)

	v1.GET("/hotels", hotelController.GetHotels)
	v1.GET("/hotels/search", middlewares.SessionMiddleware(), hotelController.SearchHotels)
	v1.POST("/hotels/search", middlewares.SessionMiddleware(), hotelController.SearchHotels)
	v1.GET("/hotels/:id", hotelController.GetHotelDetail)
	v1.POST("/hotels", manager, hotelController.CreateHotel)
	v1.PUT("/hotels/:id", manager, hotelController.UpdateHotel)
	v1.POST("/hotels/:id/image", manager, hotelController.UploadHotelImage)

	v1.GET("/rooms", roomController.GetRooms)
	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/rooms/:id/booked-dates", roomController.GetBookedDates)
	v1.POST("/rooms", manager, roomController.CreateRoom)
	v1.PUT("/rooms/:id", manager, roomController.UpdateRoom)
	v1.DELETE("/rooms/:id", manager, roomController.DeleteRoom)

	v1.GET("/reservations", auth, reservationController.GetReservations)
	v1.POST("/reservations", auth, reservationController.CreateReservation)
	v1.GET("/reservations/:id", auth, reservationController.GetReservationDetail)
	v1.PUT("/reservations/:id", auth, reservationController.UpdateReservation)
	v1.DELETE("/reservations/:id", auth, reservationController.DeleteReservation)

	v1.GET("/manager/hotel", manager, hotelController.ManageHotel)
	v1.GET("/manager/reservations", manager, reservationController.GetManagerReservations)
	v1.PUT("/manager/reservations/:id/approve", manager, reservationController.ApproveReservation)
	v1.PUT("/manager/reservations/:id/reject", manager, reservationController.RejectReservation)
	v1.GET("/manager/dashboard", manager, dashboardController.ManagerDashboard)

	v1.GET("/admin/data", admin, dashboardController.AdminDashboard)
	v1.GET("/admin/hotels/pending", admin, adminController.GetPendingHotels)
	v1.PUT("/admin/hotels/:id/approve", admin, adminController.ApproveHotel)
	v1.DELETE("/admin/hotels/:id", admin, adminController.RejectHotel)
	v1.GET("/admin/support", admin, adminController.GetTickets)
	v1.PUT("/admin/support/:id", admin, adminController.UpdateTicketStatus)

	v1.GET("/support", auth, supportController.GetMyTickets)
	v1.POST("/support", auth, supportController.CreateTicket)
}
