package router

import (
	"fmt"
	"net/http"

	"carwash/internal/interfaces/api/handler"
	"carwash/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the dependencies for the router.
type Config struct {
	SubscriptionHandler *handler.SubscriptionHandler
	NotificationHandler *handler.NotificationHandler
	Logger              logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Health and metrics
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Collaborator events and customer-facing live feed
	api := e.Group("/api")
	api.POST("/subscriptions", cfg.SubscriptionHandler.Create)
	api.GET("/subscriptions/:id", cfg.SubscriptionHandler.Get)
	api.POST("/subscriptions/:id/pause", cfg.SubscriptionHandler.Pause)
	api.POST("/subscriptions/:id/resume", cfg.SubscriptionHandler.Resume)
	api.POST("/subscriptions/:id/cancel", cfg.SubscriptionHandler.Cancel)
	api.POST("/occurrences/:id/complete", cfg.SubscriptionHandler.CompleteOccurrence)
	api.GET("/customers/:id/notifications", cfg.NotificationHandler.ListForCustomer)
	api.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
	api.POST("/notifications/:id/dismiss", cfg.NotificationHandler.Dismiss)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
