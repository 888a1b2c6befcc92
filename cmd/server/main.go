package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/handlers"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/internal/services"
	"talent-show-backend/pkg/database"
	"talent-show-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Initialize repositories
	repo := repositories.NewRepository(db)

	// Domain event bus: mutation services publish, the notification
	// service consumes and writes notification rows.
	bus := services.NewEventBus()

	// Initialize services
	authSvc := services.NewAuthService(repo, cfg)
	registrationSvc := services.NewRegistrationService(repo, cfg, bus)
	auditionSvc := services.NewAuditionService(repo, cfg, bus)
	announcementSvc := services.NewAnnouncementService(repo, cfg, bus)
	notificationSvc := services.NewNotificationService(repo, cfg, bus)
	votingSvc := services.NewVotingService(repo, cfg)

	// Initialize handlers
	handler := handlers.NewHandler(authSvc, registrationSvc, auditionSvc, announcementSvc, notificationSvc, votingSvc, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Talent Show API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Create upload directories
	if err := os.MkdirAll(cfg.ImageDir, 0755); err != nil {
		log.Fatalf("Failed to create image directory: %v", err)
	}
	if err := os.MkdirAll(cfg.QRDir, 0755); err != nil {
		log.Fatalf("Failed to create QR directory: %v", err)
	}

	// Static file serving
	app.Static("/performances", cfg.ImageDir)
	app.Static("/qrcodes", cfg.QRDir)

	// Register routes
	api := app.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("🚀 Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
