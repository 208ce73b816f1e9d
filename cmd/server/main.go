package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/cache"
	"github.com/gotravel/gotravel-backend/internal/config"
	"github.com/gotravel/gotravel-backend/internal/database"
	"github.com/gotravel/gotravel-backend/internal/handlers"
	"github.com/gotravel/gotravel-backend/internal/middleware"
	"github.com/gotravel/gotravel-backend/internal/services"
	"github.com/gotravel/gotravel-backend/pkg/jwt"
	"github.com/gotravel/gotravel-backend/pkg/mail"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()
	logger.Info("Database connection established")

	catalogCache, err := cache.New(&cfg.Redis, logger)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, catalog cache disabled")
		catalogCache = nil
	} else {
		defer catalogCache.Close()
	}

	// Repositories
	userRepo := database.NewUserRepository(db)
	destinationRepo := database.NewDestinationRepository(db)
	packageRepo := database.NewPackageRepository(db)
	addonRepo := database.NewAddOnRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	leadRepo := database.NewLeadRepository(db)
	reportRepo := database.NewReportRepository(db)

	// Infrastructure
	tokens := jwt.NewManager(
		cfg.JWT.Secret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)
	mailer := mail.NewClient(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.FromAddress, logger)
	gateway := services.NewRazorpayService(&cfg.Payment, logger)

	// Services
	notifier := services.NewNotifyService(mailer, &cfg.Mail, logger)
	authService := services.NewAuthService(userRepo, tokens, logger)
	catalogService := services.NewCatalogService(destinationRepo, packageRepo, addonRepo, catalogCache, logger)
	bookingService := services.NewBookingService(
		bookingRepo, packageRepo, userRepo, gateway, notifier, cfg.Payment.KeyID, logger,
	)
	leadService := services.NewLeadService(leadRepo, destinationRepo, notifier, logger)
	reportService := services.NewReportService(reportRepo, userRepo, logger)

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(tokens, userRepo, logger)
	h := &handlers.Handlers{
		Auth:    handlers.NewAuthHandler(authService, logger),
		Catalog: handlers.NewCatalogHandler(catalogService, logger),
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Payment: handlers.NewPaymentHandler(bookingService, logger),
		Lead:    handlers.NewLeadHandler(leadService, logger),
		Admin:   handlers.NewAdminHandler(reportService, logger),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(router, h, authMiddleware)

	// Retry undelivered lead alerts every 5 minutes
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/5 * * * *", leadService.RetryPendingAlerts); err != nil {
		logger.WithError(err).Fatal("Failed to schedule lead alert retry")
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
	logger.Info("Server stopped")
}
