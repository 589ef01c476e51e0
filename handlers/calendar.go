package handlers

import (
	"errors"
	"net/http"

	"consultly/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler serves the event listing and availability endpoints.
type CalendarHandler struct {
	Svc    calendar.Service
	Logger *zap.Logger
}

// NewCalendarHandler creates a new CalendarHandler instance.
func NewCalendarHandler(svc calendar.Service, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Svc: svc, Logger: logger}
}

// ListEventsHandler returns every event on the consultation calendar.
func (h *CalendarHandler) ListEventsHandler(c *gin.Context) {
	events, err := h.Svc.ListEvents(c.Request.Context())
	if err != nil {
		if errors.Is(err, calendar.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "calendar service is not configured"})
			return
		}
		h.Logger.Error("failed to list events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	if events == nil {
		events = []calendar.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CheckAvailabilityHandler reports whether a requested slot is free. Any
// event already starting inside the window marks the slot as booked.
func (h *CalendarHandler) CheckAvailabilityHandler(c *gin.Context) {
	var input struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.StartTime == "" || input.EndTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startTime and endTime are required"})
		return
	}

	events, err := h.Svc.EventsBetween(c.Request.Context(), input.StartTime, input.EndTime)
	if err != nil {
		if errors.Is(err, calendar.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "calendar service is not configured"})
			return
		}
		h.Logger.Error("availability check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
		return
	}

	if len(events) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This time slot is already booked"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}
