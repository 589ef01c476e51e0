package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRoutes(cal *fakeCalendar, pay *fakePayment) func(r *gin.Engine) {
	h := NewCheckoutHandler(cal, pay, testLogger())
	return func(r *gin.Engine) {
		r.POST("/create-checkout-session", h.CreateCheckoutSessionHandler)
	}
}

const validBooking = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": "+15550100",
	"duration": 30,
	"price": 7500,
	"startTime": "2026-09-10T10:00:00",
	"endTime": "2026-09-10T10:30:00",
	"timezone": "America/New_York",
	"notes": "First visit",
	"photoUrls": ["https://x/a.jpg"]
}`

func postCheckout(t *testing.T, cal *fakeCalendar, pay *fakePayment, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return perform(checkoutRoutes(cal, pay), req)
}

func TestCreateCheckoutSession_EndToEnd(t *testing.T) {
	cal := &fakeCalendar{}
	pay := &fakePayment{}

	rec := postCheckout(t, cal, pay, validBooking)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "cs_test_123", resp["id"])

	// Exactly one calendar event, carrying the client as attendee.
	require.Len(t, cal.createdEvents, 1)
	ev := cal.createdEvents[0]
	assert.Equal(t, "Virtual Consultation - Ada Lovelace", ev.Subject)
	assert.Equal(t, "HTML", ev.Body.ContentType)
	assert.Contains(t, ev.Body.Content, "ada@example.com")
	assert.Contains(t, ev.Body.Content, "https://x/a.jpg")
	assert.Equal(t, "2026-09-10T10:00:00", ev.Start.DateTime)
	assert.Equal(t, "America/New_York", ev.Start.TimeZone)
	require.Len(t, ev.Attendees, 1)
	assert.Equal(t, "ada@example.com", ev.Attendees[0].EmailAddress.Address)

	// Exactly one payment session with the literal integer price.
	require.Len(t, pay.sessions, 1)
	assert.Equal(t, int64(7500), pay.sessions[0].Price)
	assert.Equal(t, int64(30), pay.sessions[0].DurationMinutes)
	assert.Equal(t, "ada@example.com", pay.sessions[0].Email)

	// Exactly one confirmation message, sent to the client.
	require.Len(t, cal.drafts, 1)
	require.Len(t, cal.drafts[0].ToRecipients, 1)
	assert.Equal(t, "ada@example.com", cal.drafts[0].ToRecipients[0].EmailAddress.Address)
	assert.Equal(t, []string{"draft-1"}, cal.sentDrafts)
}

func TestCreateCheckoutSession_StringNumbersCoerced(t *testing.T) {
	cal := &fakeCalendar{}
	pay := &fakePayment{}

	body := strings.Replace(validBooking, `"duration": 30`, `"duration": "45"`, 1)
	body = strings.Replace(body, `"price": 7500`, `"price": "9900"`, 1)
	rec := postCheckout(t, cal, pay, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, pay.sessions, 1)
	assert.Equal(t, int64(9900), pay.sessions[0].Price)
	assert.Equal(t, int64(45), pay.sessions[0].DurationMinutes)
}

func TestCreateCheckoutSession_MissingFields(t *testing.T) {
	required := []string{"name", "email", "duration", "price", "startTime", "endTime", "timezone"}
	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(validBooking), &payload))
			delete(payload, field)
			body, err := json.Marshal(payload)
			require.NoError(t, err)

			cal := &fakeCalendar{}
			pay := &fakePayment{}
			rec := postCheckout(t, cal, pay, string(body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// No downstream calls of any kind.
			assert.Empty(t, cal.createdEvents)
			assert.Empty(t, cal.drafts)
			assert.Empty(t, cal.sentDrafts)
			assert.Empty(t, pay.sessions)
		})
	}
}

func TestCreateCheckoutSession_OptionalFieldsOmitted(t *testing.T) {
	cal := &fakeCalendar{}
	pay := &fakePayment{}

	body := `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"duration": 30,
		"price": 7500,
		"startTime": "2026-09-10T10:00:00",
		"endTime": "2026-09-10T10:30:00",
		"timezone": "America/New_York"
	}`
	rec := postCheckout(t, cal, pay, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, pay.sessions, 1)
	assert.Empty(t, pay.sessions[0].PhotoURLs)
}

func TestCreateCheckoutSession_CalendarFailure(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("event create refused")}
	pay := &fakePayment{}

	rec := postCheckout(t, cal, pay, validBooking)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "refused")
	// The chain stops before payment.
	assert.Empty(t, pay.sessions)
}

func TestCreateCheckoutSession_PaymentFailure(t *testing.T) {
	cal := &fakeCalendar{}
	pay := &fakePayment{err: errors.New("card network down")}

	rec := postCheckout(t, cal, pay, validBooking)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The event was already created; the failure still surfaces as a full 500.
	assert.Len(t, cal.createdEvents, 1)
	assert.Empty(t, cal.sentDrafts)
}
