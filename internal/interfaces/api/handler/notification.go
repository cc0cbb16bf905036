package handler

import (
	"errors"
	"net/http"

	"carwash/internal/application/service"
	appErrors "carwash/internal/pkg/errors"
	"carwash/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler exposes live notification read/dismiss operations.
type NotificationHandler struct {
	notificationSvc service.NotificationService
	log             logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationSvc service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, log: log}
}

// ListForCustomer returns the customer's active live notifications.
func (h *NotificationHandler) ListForCustomer(c echo.Context) error {
	notifications, err := h.notificationSvc.ListActiveForCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Failed to list live notifications", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead marks a live notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notificationSvc.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Dismiss dismisses a live notification.
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	if err := h.notificationSvc.Dismiss(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) mapError(err error) error {
	if errors.Is(err, appErrors.ErrNotificationNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	h.log.Error("Notification handler error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
