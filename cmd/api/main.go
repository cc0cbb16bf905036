package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carwash/internal/application/service"
	"carwash/internal/config"
	"carwash/internal/infrastructure/channel"
	"carwash/internal/infrastructure/database/sqlite"
	"carwash/internal/infrastructure/scheduler"
	"carwash/internal/interfaces/api/handler"
	"carwash/internal/interfaces/api/router"
	appLogger "carwash/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, schedulerSvc service.SchedulerService, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduling loop first so no tick races the shutdown
	log.Println("Stopping scheduling loop...")
	schedulerSvc.Stop()
	log.Println("Scheduling loop stopped.")

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	cfg, err := config.Load(context.Background())
	if err != nil {
		appLog.Error("Failed to load configuration", err)
		os.Exit(1)
	}

	// --- Infrastructure ---
	db := sqlite.NewDB(cfg.Database.Path)
	subscriptionRepo := sqlite.NewSubscriptionRepository(db)
	occurrenceRepo := sqlite.NewOccurrenceRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)
	liveRepo := sqlite.NewLiveNotificationRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)
	planRepo := sqlite.NewPlanRepository(db)
	appLog.Info("Database and repositories initialized.")

	emailSender := channel.NewEmailSender(cfg.SMTP, appLog)
	smsSender := channel.NewSMSSender(cfg.SMS, appLog)
	websiteSender := channel.NewWebsiteSender(liveRepo, appLog)
	opsWebhook := channel.NewWebhookNotifier(cfg.Webhook, appLog)
	cronRunner := scheduler.NewCron(appLog)

	// --- Application Services ---
	loyaltySvc := service.NewLoyaltyService(customerRepo, liveRepo, emailSender, appLog)
	subscriptionSvc := service.NewSubscriptionService(
		subscriptionRepo, occurrenceRepo, reminderRepo, customerRepo, planRepo,
		loyaltySvc, opsWebhook,
		cfg.Scheduler.LookaheadDays, cfg.Scheduler.ReminderHour, appLog,
	)
	notificationSvc := service.NewNotificationService(
		reminderRepo, liveRepo, subscriptionRepo,
		[]service.ChannelSender{emailSender, smsSender, websiteSender},
		cfg.Scheduler.SendTimeout(), cfg.Scheduler.Retention(), appLog,
	)
	schedulerSvc := service.NewSchedulerService(
		cronRunner, subscriptionSvc, notificationSvc,
		cfg.Scheduler.TickMinutes, cfg.Scheduler.SweepHour, appLog,
	)
	appLog.Info("Application services initialized.")

	// --- Seed Plan Catalog ---
	if err := service.SeedDefaultPlans(context.Background(), planRepo, appLog); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to seed default plans on startup", err)
	}

	// --- Start Scheduling Loop ---
	if err := schedulerSvc.Start(); err != nil {
		appLog.Error("Failed to start scheduling loop", err)
		os.Exit(1)
	}

	// --- API Handlers ---
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc, appLog)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		SubscriptionHandler: subscriptionHandler,
		NotificationHandler: notificationHandler,
		Logger:              appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
