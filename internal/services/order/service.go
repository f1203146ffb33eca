package order

import (
	"context"
	"errors"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/payments"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const currency = "usd"

type Service interface {
	Checkout(ctx context.Context, owner models.Principal, input models.PlaceOrderInput) (models.Order, error)
	List(ctx context.Context, owner models.Principal) ([]models.Order, error)
	// Get lets admins read any order; others only their own.
	Get(ctx context.Context, caller models.Principal, id string) (models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)

	CreatePaymentIntent(ctx context.Context, caller models.Principal, id string) (models.PaymentIntentResult, error)
	HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error
}

type service struct {
	orders  repository.OrderRepository
	carts   cart.Service
	gateway payments.Gateway
}

func NewService(orders repository.OrderRepository, carts cart.Service, gateway payments.Gateway) Service {
	if gateway == nil {
		gateway = payments.Disabled{}
	}
	return &service{orders: orders, carts: carts, gateway: gateway}
}

// Checkout snapshots the cart into a pending order and then drops the cart.
func (s *service) Checkout(ctx context.Context, owner models.Principal, input models.PlaceOrderInput) (models.Order, error) {
	current, err := s.carts.Get(ctx, owner)
	if err != nil {
		return models.Order{}, err
	}
	if len(current.Items) == 0 {
		return models.Order{}, domain.BadRequest("cart is empty")
	}

	billing := input.BillingAddress
	if billing == "" {
		billing = input.ShippingAddress
	}

	now := time.Now().UTC()
	items := make([]models.CartItem, len(current.Items))
	copy(items, current.Items)

	order := models.Order{
		ID:              uuid.NewString(),
		OwnerID:         owner.ID,
		OwnerKind:       owner.Kind,
		Items:           items,
		Total:           current.Total,
		Status:          models.OrderPending,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return models.Order{}, err
	}

	s.carts.Discard(ctx, owner)
	logrus.WithFields(logrus.Fields{"order_id": order.ID, "owner_id": owner.ID, "total": order.Total}).Info("Order placed")
	return order, nil
}

func (s *service) List(ctx context.Context, owner models.Principal) ([]models.Order, error) {
	return s.orders.ListByOwner(ctx, owner.ID)
}

func (s *service) Get(ctx context.Context, caller models.Principal, id string) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !caller.IsAdmin() && order.OwnerID != caller.ID {
		return models.Order{}, domain.Forbidden("order belongs to another account")
	}
	return order, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, domain.BadRequest("invalid order status %q", status)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *service) CreatePaymentIntent(ctx context.Context, caller models.Principal, id string) (models.PaymentIntentResult, error) {
	order, err := s.Get(ctx, caller, id)
	if err != nil {
		return models.PaymentIntentResult{}, err
	}
	if order.Status != models.OrderPending {
		return models.PaymentIntentResult{}, domain.BadRequest("order is already %s", order.Status)
	}

	cents := decimal.NewFromFloat(order.Total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	intent, err := s.gateway.CreateIntent(ctx, order.ID, cents, currency)
	if err != nil {
		return models.PaymentIntentResult{}, err
	}
	if err := s.orders.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		return models.PaymentIntentResult{}, err
	}

	return models.PaymentIntentResult{
		OrderID:         order.ID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          order.Total,
		Currency:        currency,
	}, nil
}

// HandlePaymentEvent confirms the order on a successful payment. Events for
// unknown orders are acknowledged so the provider stops retrying.
func (s *service) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		return err
	}
	if event.Type != payments.EventPaymentSucceeded || event.OrderID == "" {
		return nil
	}

	log := logrus.WithFields(logrus.Fields{"order_id": event.OrderID, "payment_intent": event.PaymentIntentID})
	current, err := s.orders.FindByID(ctx, event.OrderID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn("Payment event for unknown order")
		return nil
	}
	if err != nil {
		return err
	}
	// Stripe redelivers events; only a pending order is confirmed.
	if current.Status != models.OrderPending {
		log.WithField("status", current.Status).Info("Payment event already handled")
		return nil
	}

	_, err = s.orders.TransitionStatus(ctx, event.OrderID, models.OrderPending, models.OrderConfirmed)
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("Payment event already handled")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("Order payment confirmed")
	return nil
}
