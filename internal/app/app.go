package app

import (
	"fmt"
	"time"

	"gigcampus_backend/database"
	"gigcampus_backend/internal/auth"
	"gigcampus_backend/internal/config"
	"gigcampus_backend/internal/email"
	"gigcampus_backend/internal/handlers"
	"gigcampus_backend/internal/logger"
	"gigcampus_backend/internal/middleware"
	"gigcampus_backend/internal/payments"
	"gigcampus_backend/internal/routes"
	"gigcampus_backend/internal/services"
	"gigcampus_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine with the collaborators the
// config selects.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = &MockEmailProvider{}
		logger.Warn("Email delivery disabled, using mock provider")
	}

	var gateway payments.Gateway
	switch cfg.Payments.Provider {
	case "mock", "":
		gateway = payments.NewMockGateway()
		logger.Warn("Payment gateway running in mock mode")
	default:
		logger.Fatal("Unknown payment provider", "provider", cfg.Payments.Provider)
	}

	return NewRouter(cfg, gormDB, gateway, emailProvider)
}

// NewRouter wires services, handlers, middleware and routes around the
// given collaborators. Integration tests call it directly so they can
// hold on to the mock gateway and steer payment outcomes.
func NewRouter(cfg *config.Config, gormDB *gorm.DB, gateway payments.Gateway, emailProvider email.Provider) *gin.Engine {
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, "gigcampus", time.Duration(cfg.JWT.TTL)*time.Minute)

	serviceContainer := services.NewServiceContainer(jwtManager, emailProvider, gateway, cfg.Payments.Currency)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, jwtManager, cfg)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(nil))
	router.Use(middleware.DBMiddleware(db))
	return router
}
