package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway is the live Gateway backed by Stripe. The API key is set
// globally on the stripe package at startup.
type StripeGateway struct{}

func (StripeGateway) CreateIntent(amountCents int64, currency string, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

func (StripeGateway) CreateRefund(intentID string) (string, error) {
	r, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	})
	if err != nil {
		return "", fmt.Errorf("stripe refund: %w", err)
	}
	return r.ID, nil
}
