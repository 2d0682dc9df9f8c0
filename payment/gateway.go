// Package payment implements the gateway side of the registration flow:
// a deterministic simulated card processor for the synchronous path and a
// PayPal REST client for the redirect path.
package payment

import (
	"context"

	"conference-webapp/model"
	"conference-webapp/registration"
)

// CardProcessor charges a card synchronously.
type CardProcessor interface {
	Charge(ctx context.Context, req registration.ChargeRequest) error
}

// Gateway combines the card processor and the PayPal client behind the
// single interface the orchestrator consumes.
type Gateway struct {
	Cards  CardProcessor
	PayPal *PayPalClient
}

func (g *Gateway) Charge(ctx context.Context, req registration.ChargeRequest) error {
	return g.Cards.Charge(ctx, req)
}

func (g *Gateway) CreateRedirectIntent(ctx context.Context, amount float64, currency model.Currency, conferenceId, title string) (registration.RedirectIntent, error) {
	return g.PayPal.CreatePayment(ctx, amount, currency, conferenceId, title)
}

func (g *Gateway) CaptureRedirectIntent(ctx context.Context, paymentId, payerId string) (bool, error) {
	return g.PayPal.ExecutePayment(ctx, paymentId, payerId)
}
