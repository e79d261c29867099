// Package payment wraps the card-payment provider used to fund wallets.
package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/ticketforge/ticketforge/internal/apperror"
	"github.com/ticketforge/ticketforge/internal/config"
)

type Gateway interface {
	// Charge captures amountCents from the payment method and returns the
	// provider's charge reference.
	Charge(ctx context.Context, amountCents int64, paymentMethodID string) (string, error)
}

type StripeGateway struct {
	api      *client.API
	currency string
}

func NewStripeGateway(conf *config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(conf.SecretKey, nil)

	return &StripeGateway{
		api:      api,
		currency: conf.Currency,
	}
}

func (g *StripeGateway) Charge(ctx context.Context, amountCents int64, paymentMethodID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(g.currency),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("g.api.PaymentIntents.New -> %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return "", apperror.Payment(fmt.Sprintf("payment not completed: %v", intent.Status))
	}

	return intent.ID, nil
}
