// Command main is the entry point for the Gatherly backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatherly/internal/cache"
	"gatherly/internal/calendarsync"
	"gatherly/internal/config"
	"gatherly/internal/database"
	"gatherly/internal/jobs"
	"gatherly/internal/notify"
	"gatherly/internal/observability"
	"gatherly/internal/repository"
	"gatherly/internal/server"
	"gatherly/internal/service"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "gatherly-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.SamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Connect database and run migrations
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis (rate limiting)
	cache.InitRedis(cfg.RedisURL)

	// Create server with dependency injection
	srv, err := server.NewServerWithDeps(cfg, db, cache.GetClient())
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Background jobs: weekly reminders and calendar sync
	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	defaultScheduleRepo := repository.NewDefaultScheduleRepository(db)
	calendarSyncRepo := repository.NewCalendarSyncRepository(db)
	availabilityService := service.NewAvailabilityService(scheduleRepo, defaultScheduleRepo)

	var sender notify.SMSSender = notify.LogSender{}
	if cfg.SMSConfigured() {
		sender = notify.NewTwilioSender(cfg)
	}
	reminders := notify.NewReminderService(userRepo, scheduleRepo, sender, cfg.AppBaseURL)

	var syncer *calendarsync.Syncer
	if cfg.CalendarSyncConfigured() {
		syncer = calendarsync.NewSyncer(calendarSyncRepo, scheduleRepo, availabilityService, calendarsync.NewGoogleFetcher(cfg))
	}

	scheduler := jobs.NewScheduler(cfg, reminders, syncer)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Gatherly API",
	})

	// Setup middleware and routes
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		scheduler.Stop()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}

		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
