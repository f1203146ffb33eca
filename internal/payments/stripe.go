package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

var (
	ErrDisabled         = errors.New("payments are not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

const EventPaymentSucceeded = "payment_intent.succeeded"

type Intent struct {
	ID           string
	ClientSecret string
}

// Event is the subset of a provider event the order flow acts on.
type Event struct {
	Type            string
	OrderID         string
	PaymentIntentID string
}

type Gateway interface {
	CreateIntent(ctx context.Context, orderID string, amountCents int64, currency string) (Intent, error)
	ParseEvent(payload []byte, signature string) (Event, error)
}

type StripeGateway struct {
	webhookSecret string
}

// NewStripeGateway sets the process-wide Stripe key.
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, orderID string, amountCents int64, currency string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": orderID,
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe: %w", err)
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) ParseEvent(payload []byte, signature string) (Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Event{}, ErrInvalidSignature
	}

	out := Event{Type: string(event.Type)}
	if out.Type != EventPaymentSucceeded {
		return out, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return Event{}, fmt.Errorf("decode payment intent: %w", err)
	}
	out.PaymentIntentID = pi.ID
	out.OrderID = pi.Metadata["order_id"]
	return out, nil
}

// Disabled is wired when STRIPE_SECRET_KEY is unset.
type Disabled struct{}

func (Disabled) CreateIntent(context.Context, string, int64, string) (Intent, error) {
	return Intent{}, ErrDisabled
}

func (Disabled) ParseEvent([]byte, string) (Event, error) {
	return Event{}, ErrDisabled
}
