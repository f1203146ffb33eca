package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/payments"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/developia-II/tacticalgear-backend/internal/services/order"
	"github.com/developia-II/tacticalgear-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = models.Principal{Kind: models.PrincipalDealer, ID: "dealer-1"}
	other = models.Principal{Kind: models.PrincipalUser, ID: "user-9"}
	admin = models.Principal{Kind: models.PrincipalAdmin, ID: "admin-1"}
)

type fixture struct {
	carts   cart.Service
	gateway *testutil.Gateway
	svc     order.Service
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, testutil.Product("p1", 24.99, 10)))
	require.NoError(t, store.Products().Create(ctx, testutil.Product("p2", 100, 10)))

	carts := cart.NewService(store.Carts(), store.Products())
	gateway := &testutil.Gateway{Intent: payments.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	return fixture{carts: carts, gateway: gateway, svc: order.NewService(store.Orders(), carts, gateway)}
}

func (f fixture) fill(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.Add(ctx, owner, models.AddToCartInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, owner, models.AddToCartInput{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Checkout(context.Background(), owner, models.PlaceOrderInput{ShippingAddress: "1 Main St"})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCheckoutSnapshotsAndClearsCart(t *testing.T) {
	f := setup(t)
	f.fill(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, 149.98, o.Total)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, "1 Main St", o.BillingAddress)
	assert.Equal(t, owner.ID, o.OwnerID)

	c, err := f.carts.Get(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = f.svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "1 Main St"})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	mine, err := f.svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := setup(t)
	f.fill(t)
	ctx := context.Background()
	o, err := f.svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "1 Main St", BillingAddress: "PO Box 7"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, other, o.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	got, err := f.svc.Get(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO Box 7", got.BillingAddress)

	_, err = f.svc.Get(ctx, owner, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	f.fill(t)
	ctx := context.Background()
	o, err := f.svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, o.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, o.ID, "lost")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestPaymentIntentAndWebhook(t *testing.T) {
	f := setup(t)
	f.fill(t)
	ctx := context.Background()
	o, err := f.svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	res, err := f.svc.CreatePaymentIntent(ctx, owner, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret", res.ClientSecret)
	assert.Equal(t, []int64{14998}, f.gateway.Amounts)

	f.gateway.Event = payments.Event{Type: payments.EventPaymentSucceeded, OrderID: o.ID, PaymentIntentID: "pi_123"}
	require.NoError(t, f.svc.HandlePaymentEvent(ctx, []byte("{}"), "sig"))

	got, err := f.svc.Get(ctx, owner, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, got.Status)
	assert.Equal(t, "pi_123", got.PaymentIntentID)

	_, err = f.svc.CreatePaymentIntent(ctx, owner, o.ID)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestWebhookEdgeCases(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.gateway.Event = payments.Event{Type: payments.EventPaymentSucceeded, OrderID: "unknown"}
	assert.NoError(t, f.svc.HandlePaymentEvent(ctx, nil, "sig"))

	f.gateway.Event = payments.Event{Type: "charge.refunded", OrderID: "unknown"}
	assert.NoError(t, f.svc.HandlePaymentEvent(ctx, nil, "sig"))

	f.gateway.ParseErr = payments.ErrInvalidSignature
	assert.ErrorIs(t, f.svc.HandlePaymentEvent(ctx, nil, "bad"), payments.ErrInvalidSignature)
}

func TestReplayedPaymentEventKeepsLaterStatus(t *testing.T) {
	f := setup(t)
	f.fill(t)
	ctx := context.Background()
	o, err := f.svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	f.gateway.Event = payments.Event{Type: payments.EventPaymentSucceeded, OrderID: o.ID, PaymentIntentID: "pi_123"}
	require.NoError(t, f.svc.HandlePaymentEvent(ctx, []byte("{}"), "sig"))

	for _, status := range []models.OrderStatus{models.OrderShipped, models.OrderDelivered, models.OrderCancelled} {
		_, err := f.svc.UpdateStatus(ctx, o.ID, status)
		require.NoError(t, err)

		require.NoError(t, f.svc.HandlePaymentEvent(ctx, []byte("{}"), "sig"))
		got, err := f.svc.Get(ctx, owner, o.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestPaymentsDisabled(t *testing.T) {
	store := testutil.NewStore()
	carts := cart.NewService(store.Carts(), store.Products())
	svc := order.NewService(store.Orders(), carts, nil)
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, testutil.Product("p1", 5, 5)))
	_, err := carts.Add(ctx, owner, models.AddToCartInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	o, err := svc.Checkout(ctx, owner, models.PlaceOrderInput{ShippingAddress: "x"})
	require.NoError(t, err)

	_, err = svc.CreatePaymentIntent(ctx, owner, o.ID)
	assert.ErrorIs(t, err, payments.ErrDisabled)
}
