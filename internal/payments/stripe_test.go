package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
)

const testWebhookSecret = "whsec_test"

func signed(t *testing.T, payload string) ([]byte, string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testWebhookSecret,
	})
	return sp.Payload, sp.Header
}

func TestParseEventPaymentSucceeded(t *testing.T) {
	g := NewStripeGateway("sk_test_unused", testWebhookSecret)
	payload, header := signed(t, `{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_42", "object": "payment_intent", "metadata": {"order_id": "order-7"}}}
	}`)

	event, err := g.ParseEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, Event{Type: EventPaymentSucceeded, OrderID: "order-7", PaymentIntentID: "pi_42"}, event)
}

func TestParseEventOtherType(t *testing.T) {
	g := NewStripeGateway("sk_test_unused", testWebhookSecret)
	payload, header := signed(t, `{"id": "evt_2", "object": "event", "type": "charge.refunded", "data": {"object": {}}}`)

	event, err := g.ParseEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", event.Type)
	assert.Empty(t, event.OrderID)
}

func TestParseEventBadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test_unused", testWebhookSecret)
	_, err := g.ParseEvent([]byte(`{"type":"payment_intent.succeeded"}`), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDisabledGateway(t *testing.T) {
	_, err := Disabled{}.CreateIntent(context.Background(), "o", 100, "usd")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = Disabled{}.ParseEvent(nil, "")
	assert.ErrorIs(t, err, ErrDisabled)
}
