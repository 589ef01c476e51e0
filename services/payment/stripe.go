package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeService is the production Service implementation. It relies on the
// package-global stripe.Key being set at startup.
type StripeService struct {
	successURL string
	cancelURL  string
	logger     *zap.Logger
}

// NewStripeService creates the payment adapter. The redirect URLs are
// configuration constants, never request-supplied.
func NewStripeService(successURL, cancelURL string, logger *zap.Logger) *StripeService {
	if logger == nil {
		logger = zap.L()
	}
	return &StripeService{
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// Configured reports whether a Stripe secret key was supplied at startup.
func (s *StripeService) Configured() bool {
	return stripe.Key != ""
}

// CreateCheckoutSession creates a single-item hosted checkout session in
// USD and returns its session id. The price passes through as the literal
// unit amount.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, d CheckoutDetails) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(d.Email),
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(d.Price),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("Virtual Consultation (%d minutes)", d.DurationMinutes)),
						Description: stripe.String(fmt.Sprintf("Consultation for %s, %s to %s (%s)", d.Name, d.StartTime, d.EndTime, d.Timezone)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.New().String())

	params.AddMetadata("name", d.Name)
	params.AddMetadata("email", d.Email)
	params.AddMetadata("phone", d.Phone)
	params.AddMetadata("startTime", d.StartTime)
	params.AddMetadata("endTime", d.EndTime)
	params.AddMetadata("timezone", d.Timezone)
	params.AddMetadata("notes", d.Notes)
	params.AddMetadata("photoUrls", strings.Join(d.PhotoURLs, ","))

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("StripeService: failed to create checkout session: %w", err)
	}

	s.logger.Info("checkout session created", zap.String("session", sess.ID))
	return sess.ID, nil
}
