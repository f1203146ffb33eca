package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

type Cart struct {
	ID        string        `json:"id" bson:"id"`
	OwnerID   string        `json:"owner_id" bson:"owner_id"`
	OwnerKind PrincipalKind `json:"owner_kind" bson:"owner_kind"`
	Items     []CartItem    `json:"items" bson:"items"`
	Total     float64       `json:"total" bson:"total"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Recalculate resets Total from the lines.
func (c *Cart) Recalculate() {
	c.Total = SumLines(c.Items, func(i CartItem) (int, float64) { return i.Quantity, i.Price })
}

// SumLines adds quantity*price over items in decimal and rounds to cents.
func SumLines[T any](items []T, line func(T) (int, float64)) float64 {
	total := decimal.Zero
	for _, item := range items {
		qty, price := line(item)
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
	}
	f, _ := total.Round(2).Float64()
	return f
}

type AddToCartInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartLine is a cart item joined with the current product document.
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

type CartView struct {
	ID    string     `json:"id,omitempty"`
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}
