package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blood-network-backend/config"
	deliveryHttp "blood-network-backend/internal/delivery/http"
	"blood-network-backend/internal/delivery/http/handler"
	"blood-network-backend/internal/delivery/http/middleware"
	"blood-network-backend/internal/infrastructure/cache"
	"blood-network-backend/internal/infrastructure/database"
	"blood-network-backend/internal/repository"
	"blood-network-backend/internal/seed"
	"blood-network-backend/internal/service"
	"blood-network-backend/internal/usecase"
	"blood-network-backend/pkg/jwt"
	"blood-network-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database migrated successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, statsUsecase := initializeServer(cfg, db, redisClient)
	app.Server = server

	if cfg.App.Seed {
		if err := seed.Run(db, logrus.StandardLogger(), statsUsecase); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, usecase.StatsUsecase) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	locationRepo := repository.NewLocationRepository()
	accountRepo := repository.NewHospitalAccountRepository()
	personRepo := repository.NewPersonRepository()
	bloodUnitRepo := repository.NewBloodUnitRepository()
	statsRepo := repository.NewStatsRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize stats cache
	statsCache := service.NewRedisStatsCache(redisClient, log)

	// Initialize usecases
	statsUsecase := usecase.NewStatsUsecase(db, log, locationRepo, personRepo, bloodUnitRepo, statsRepo, statsCache)
	authUsecase := usecase.NewAuthUsecase(db, log, locationRepo, accountRepo, jwtService, redisClient)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, locationRepo, accountRepo, statsRepo, statsUsecase, statsCache)
	donorUsecase := usecase.NewDonorUsecase(db, log, personRepo, statsUsecase)
	inventoryUsecase := usecase.NewInventoryUsecase(db, log, locationRepo, bloodUnitRepo, statsUsecase)
	matchingUsecase := usecase.NewMatchingUsecase(db, log, locationRepo, personRepo, statsRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, statsUsecase, customValidator)
	donorHandler := handler.NewDonorHandler(donorUsecase, customValidator)
	inventoryHandler := handler.NewInventoryHandler(inventoryUsecase, customValidator)
	matchingHandler := handler.NewMatchingHandler(matchingUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, hospitalHandler, donorHandler, inventoryHandler, matchingHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, statsUsecase
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
