package models

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              string        `json:"id" bson:"id"`
	OwnerID         string        `json:"owner_id" bson:"owner_id"`
	OwnerKind       PrincipalKind `json:"owner_kind" bson:"owner_kind"`
	Items           []CartItem    `json:"items" bson:"items"`
	Total           float64       `json:"total" bson:"total"`
	Status          OrderStatus   `json:"status" bson:"status"`
	ShippingAddress string        `json:"shipping_address" bson:"shipping_address"`
	BillingAddress  string        `json:"billing_address" bson:"billing_address"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty" bson:"payment_intent_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

type PlaceOrderInput struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	BillingAddress  string `json:"billing_address"`
}

type UpdateOrderStatusInput struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type PaymentIntentResult struct {
	OrderID         string  `json:"order_id"`
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}
