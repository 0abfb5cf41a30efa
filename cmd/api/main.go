package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peluqueria/internal/config"
	"peluqueria/internal/database"
	"peluqueria/internal/events"
	"peluqueria/internal/middleware"
	"peluqueria/internal/modules/admin"
	"peluqueria/internal/modules/booking"
	"peluqueria/internal/notify"
	jwtsvc "peluqueria/internal/pkg/jwt"
	"peluqueria/internal/pkg/logger"
	"peluqueria/internal/repository"
	"peluqueria/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Env)
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	hub := events.NewHub(zlog)
	reservationRepo := repository.NewReservationRepository(db, hub)
	catalog := schedule.NewCatalog()
	sender := notify.NewWhatsAppSender(cfg.SalonPhone, zlog)
	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	bookingService := booking.NewService(reservationRepo, catalog, sender, zlog)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(reservationRepo, sender, j, admin.Credentials{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	}, zlog)
	adminHandler := admin.NewHandler(adminService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(zlog))
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public: booking clients and every live view
		bookingHandler.RegisterRoutes(v1)
		v1.GET("/ws", hub.HandleWS)
		adminHandler.RegisterPublicRoutes(v1)

		// staff only
		protected := v1.Group("/admin")
		protected.Use(middleware.RequireAuth(j))
		adminHandler.RegisterRoutes(protected)
	}

	zlog.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
