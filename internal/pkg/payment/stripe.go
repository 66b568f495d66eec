package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// StripeProvider implements Provider against the Stripe API
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider creates a Stripe-backed payment provider
func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{
		api: client.New(secretKey, nil),
	}
}

// CreateIntent creates a card payment intent and returns its client secret
func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

var _ Provider = (*StripeProvider)(nil)
