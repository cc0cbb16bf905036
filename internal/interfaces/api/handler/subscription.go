package handler

import (
	"errors"
	"net/http"

	"carwash/internal/application/dto"
	"carwash/internal/application/service"
	appErrors "carwash/internal/pkg/errors"
	"carwash/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SubscriptionHandler exposes the collaborator-facing subscription events
// over HTTP.
type SubscriptionHandler struct {
	subscriptionSvc service.SubscriptionService
	log             logger.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionSvc service.SubscriptionService, log logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionSvc: subscriptionSvc, log: log}
}

// Create handles the subscription-created event from the payment
// collaborator.
func (h *SubscriptionHandler) Create(c echo.Context) error {
	var req dto.CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sub, err := h.subscriptionSvc.CreateSubscription(c.Request().Context(), req)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// Get returns a subscription by its identifier.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	sub, err := h.subscriptionSvc.GetSubscription(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// Pause pauses an active subscription.
func (h *SubscriptionHandler) Pause(c echo.Context) error {
	if err := h.subscriptionSvc.PauseSubscription(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Resume reactivates a paused subscription.
func (h *SubscriptionHandler) Resume(c echo.Context) error {
	if err := h.subscriptionSvc.ResumeSubscription(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel cancels a subscription.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	if err := h.subscriptionSvc.CancelSubscription(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteOccurrence handles the booking-completed event from the booking
// collaborator.
func (h *SubscriptionHandler) CompleteOccurrence(c echo.Context) error {
	var req dto.CompleteOccurrenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.subscriptionSvc.CompleteOccurrence(c.Request().Context(), c.Param("id"), req); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SubscriptionHandler) mapError(err error) error {
	switch {
	case errors.Is(err, appErrors.ErrSubscriptionNotFound),
		errors.Is(err, appErrors.ErrOccurrenceNotFound),
		errors.Is(err, appErrors.ErrPlanNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrInvalidFrequency),
		errors.Is(err, appErrors.ErrInvalidLeadDays),
		errors.Is(err, appErrors.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		h.log.Error("Subscription handler error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
