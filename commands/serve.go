package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hotelbook/config"
	_ "hotelbook/docs"
	"hotelbook/jobs"
	"hotelbook/repository"
	"hotelbook/routes"
	"hotelbook/services"
	"hotelbook/services/notification"
	"hotelbook/validator"

	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "apply pending migrations before serving")
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := validator.RegisterBindings(); err != nil {
		return err
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	log.Info("Successfully connected to db")

	if migrateOnStart {
		if err := config.RunMigrations(ctx, db, "up"); err != nil {
			return err
		}
	}

	var cache services.Cache = services.NopCache{}
	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		cache = services.NewRedisCache(rdb)
		log.Info("Kết nối Redis thành công")
	} else {
		log.Info("REDIS_ADDR trống, chạy không có cache")
	}

	var media services.MediaUploader
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		return err
	}
	if cld != nil {
		media = services.NewCloudinaryUploader(cld)
	}

	router, m, c := config.InitApp(cfg)
	defer c.Stop()
	notifier := notification.NewMelodyService(m)

	reservations := repository.NewReservationRepository(db)
	rooms := repository.NewRoomRepository(db)
	hotels := repository.NewHotelRepository(db)
	users := repository.NewUserRepository(db)
	tickets := repository.NewTicketRepository(db)

	tokens := services.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	var google services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = services.NewGoogleVerifier(cfg.GoogleClientID)
	}

	authService := services.NewAuthService(services.AuthServiceOptions{
		Users: users, Tokens: tokens, Google: google, Logger: log,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Store: reservations, Cache: cache, Notifier: notifier, Logger: log,
	})

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	jobs.SetPendingReminder(bookingService)
	if err := jobs.InitCronJobs(c, log); err != nil {
		return err
	}

	config.InitWebSocket(router, m, tokens, log)

	routes.SetupRoutes(router, routes.Services{
		Tokens: tokens,
		Auth:   authService,
		Users: services.NewUserService(services.UserServiceOptions{
			Users: users, Hotels: hotels, Reservations: reservations, Cache: cache, Logger: log,
		}),
		Hotels: services.NewHotelService(services.HotelServiceOptions{
			Hotels: hotels, Reservations: reservations, Cache: cache, Media: media, Logger: log,
		}),
		Rooms: services.NewRoomService(services.RoomServiceOptions{
			Rooms: rooms, Hotels: hotels, Reservations: reservations, Cache: cache, Logger: log,
		}),
		Bookings:     bookingService,
		Dashboards:   services.NewDashboardService(services.DashboardServiceOptions{Hotels: hotels, Reservations: reservations}),
		Support:      services.NewSupportService(services.SupportServiceOptions{Tickets: tickets, Logger: log}),
		SecureCookie: cfg.Env == "prod",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Đang tắt server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = m.Close()
	return srv.Shutdown(shutdownCtx)
}
