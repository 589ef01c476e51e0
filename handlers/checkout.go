package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"consultly/models"
	"consultly/services/calendar"
	"consultly/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler orchestrates a paid booking: calendar event, checkout
// session, confirmation email, strictly in that order.
type CheckoutHandler struct {
	Calendar calendar.Service
	Payment  payment.Service
	Logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler instance.
func NewCheckoutHandler(calendarSvc calendar.Service, paymentSvc payment.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		Calendar: calendarSvc,
		Payment:  paymentSvc,
		Logger:   logger,
	}
}

// CreateCheckoutSessionHandler books the consultation end to end and
// responds with the checkout session id. A failure anywhere in the chain
// yields a 500 even when earlier side effects (event, session) already
// happened; there is no rollback.
func (h *CheckoutHandler) CreateCheckoutSessionHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "missing required fields",
			"fields": missing,
		})
		return
	}

	ctx := c.Request.Context()

	event := calendar.Event{
		Subject: fmt.Sprintf("Virtual Consultation - %s", req.Name),
		Body: calendar.ItemBody{
			ContentType: "HTML",
			Content:     buildEventBody(req),
		},
		Start: calendar.DateTimeZone{DateTime: req.StartTime, TimeZone: req.Timezone},
		End:   calendar.DateTimeZone{DateTime: req.EndTime, TimeZone: req.Timezone},
		Attendees: []calendar.Attendee{
			{
				EmailAddress: calendar.EmailAddress{Address: req.Email, Name: req.Name},
				Type:         "required",
			},
		},
	}
	if _, err := h.Calendar.CreateEvent(ctx, event); err != nil {
		h.Logger.Error("failed to create calendar event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	sessionID, err := h.Payment.CreateCheckoutSession(ctx, payment.CheckoutDetails{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		DurationMinutes: req.DurationMinutes(),
		Price:           req.PriceMinorUnits(),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Timezone:        req.Timezone,
		Notes:           req.Notes,
		PhotoURLs:       req.PhotoURLs,
	})
	if err != nil {
		h.Logger.Error("failed to create payment session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	draft := calendar.Message{
		Subject: "Your virtual consultation is booked",
		Body: calendar.ItemBody{
			ContentType: "HTML",
			Content:     buildConfirmationBody(req),
		},
		ToRecipients: []calendar.Recipient{
			{EmailAddress: calendar.EmailAddress{Address: req.Email, Name: req.Name}},
		},
	}
	draftID, err := h.Calendar.CreateDraft(ctx, draft)
	if err != nil {
		h.Logger.Error("failed to create confirmation draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}
	if err := h.Calendar.SendDraft(ctx, draftID); err != nil {
		h.Logger.Error("failed to send confirmation email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sessionID})
}

// buildEventBody renders the booking details as the calendar event body.
// Client text passes through unescaped.
func buildEventBody(req models.BookingRequest) string {
	var b strings.Builder
	b.WriteString("<h3>Virtual Consultation Booking</h3>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", req.Name)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", req.Email)
	fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", req.Phone)
	fmt.Fprintf(&b, "<p><strong>Duration:</strong> %d minutes</p>", req.DurationMinutes())
	fmt.Fprintf(&b, "<p><strong>Notes:</strong> %s</p>", req.Notes)
	if len(req.PhotoURLs) > 0 {
		b.WriteString("<p><strong>Photos:</strong></p><ul>")
		for _, u := range req.PhotoURLs {
			fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, u, u)
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

// buildConfirmationBody renders the confirmation email sent to the client.
func buildConfirmationBody(req models.BookingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", req.Name)
	b.WriteString("<p>Your virtual consultation is booked.</p>")
	fmt.Fprintf(&b, "<p><strong>When:</strong> %s to %s (%s)</p>", req.StartTime, req.EndTime, req.Timezone)
	fmt.Fprintf(&b, "<p><strong>Duration:</strong> %d minutes</p>", req.DurationMinutes())
	if req.Notes != "" {
		fmt.Fprintf(&b, "<p><strong>Notes:</strong> %s</p>", req.Notes)
	}
	if len(req.PhotoURLs) > 0 {
		b.WriteString("<p>The photos you shared:</p><ul>")
		for _, u := range req.PhotoURLs {
			fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, u, u)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("<p>We look forward to seeing you.</p>")
	return b.String()
}
