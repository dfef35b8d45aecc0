package main

import (
	"hfrat-service/internal/authz"
	"hfrat-service/internal/handler"
	"hfrat-service/internal/middleware"
	"hfrat-service/internal/repository"
	"hfrat-service/internal/service"
	"hfrat-service/pkg/config"
	"hfrat-service/pkg/database"
	"hfrat-service/pkg/jwtutil"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting facility resource reporting service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	reportRepo := repository.NewReportRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	settingSvc := service.NewSettingService(settingRepo, log)
	userSvc := service.NewUserService(userRepo, facilityRepo, settingRepo, log)
	facilitySvc := service.NewFacilityService(facilityRepo, log)
	reportSvc := service.NewReportService(reportRepo, facilityRepo, settingSvc, log)
	statsSvc := service.NewStatsService(userRepo, facilityRepo, reportRepo, log)

	authHandler := handler.NewAuthHandler(userSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	monitorHandler := handler.NewMonitorHandler(reportSvc)
	userHandler := handler.NewUserHandler(userSvc)
	facilityHandler := handler.NewFacilityHandler(facilitySvc)
	settingHandler := handler.NewSettingHandler(settingSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Reporter submission
	reporter := api.Group("/reporter", middleware.Require(authz.ReporterOnly, authz.MsgReporterOnly))
	reporter.POST("/report", reportHandler.Submit)
	reporter.PUT("/report", reportHandler.Submit)

	// Monitor dashboard and trends - admins may read them too
	monitor := api.Group("/monitor", middleware.Require(authz.MonitorOrAdmin, authz.MsgMonitorOrAdmin))
	monitor.GET("/dashboard", monitorHandler.Dashboard)
	monitor.GET("/trend", monitorHandler.Trend)

	// Threshold settings are readable by any authenticated principal
	api.GET("/settings", settingHandler.Thresholds)

	// Administration
	admin := api.Group("/admin", middleware.Require(authz.AdminOnly, authz.MsgAdminOnly))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/facilities", facilityHandler.List)
	admin.POST("/facilities", facilityHandler.Create)
	admin.GET("/settings", settingHandler.List)
	admin.POST("/settings", settingHandler.Create)
	admin.POST("/settings/initialize", settingHandler.Initialize)
	admin.GET("/settings/:key", settingHandler.Get)
	admin.PUT("/settings/:key", settingHandler.Put)
	admin.DELETE("/settings/:key", settingHandler.Delete)
	admin.GET("/stats", statsHandler.Platform)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
