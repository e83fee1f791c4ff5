package app

import (
	"fmt"

	"guestbook_backend/database"
	"guestbook_backend/internal/config"
	"guestbook_backend/internal/handlers"
	"guestbook_backend/internal/logger"
	"guestbook_backend/internal/media"
	"guestbook_backend/internal/middleware"
	"guestbook_backend/internal/repositories"
	"guestbook_backend/internal/routes"
	"guestbook_backend/internal/services"
	"guestbook_backend/internal/storage"
	"guestbook_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
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
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, services and handlers into a gin engine. It is
// also the entry point the integration tests build their test server from.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	localStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", localStorage.BasePath())

	serviceContainer := initializeServices(cfg, localStorage)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, cfg, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, localStorage storage.Storage) *services.ServiceContainer {
	messageRepo := repositories.NewMessageRepository()
	imageRepo := repositories.NewImageRepository()

	customValidator := validator.New()

	mediaValidator := media.NewValidator(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)
	paginationConfig := &services.PaginationConfig{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}

	return &services.ServiceContainer{
		MessageService: services.NewMessageService(messageRepo, customValidator, paginationConfig),
		GalleryService: services.NewGalleryService(imageRepo, localStorage, mediaValidator),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		MessageHandler: handlers.NewMessageHandler(baseHandler, container.MessageService),
		GalleryHandler: handlers.NewGalleryHandler(baseHandler, container.GalleryService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
