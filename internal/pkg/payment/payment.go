package payment

import (
	"context"
	"errors"
)

// Provider errors
var (
	ErrInvalidAmount = errors.New("charge amount must be positive")
)

// Intent is a client-confirmable charge handle returned by the provider.
// The client secret is handed to the frontend to confirm the card charge.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// ConfirmedCharge is the confirmation the settlement engine consumes after
// the client completed the charge.
type ConfirmedCharge struct {
	ID          string
	AmountCents int64 // amount in minor units
	Currency    string
}

// Provider creates charge handles with an external payment service
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)
}
