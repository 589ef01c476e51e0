package payment

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when the Stripe secret key is absent.
var ErrNotConfigured = errors.New("payment service is not configured")

// CheckoutDetails carries everything one hosted checkout session needs:
// the single consultation line item plus the booking context embedded as
// product metadata.
type CheckoutDetails struct {
	Name            string
	Email           string
	Phone           string
	DurationMinutes int64
	// Price is an integer count of minor currency units; no conversion or
	// rounding is applied anywhere.
	Price     int64
	StartTime string
	EndTime   string
	Timezone  string
	Notes     string
	PhotoURLs []string
}

// Service creates hosted checkout sessions and returns their opaque ids.
type Service interface {
	CreateCheckoutSession(ctx context.Context, d CheckoutDetails) (string, error)
}
