package models

import (
	"time"
)

type Product struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name" validate:"required"`
	Description string   `json:"description" bson:"description" validate:"required"`
	Category    string   `json:"category" bson:"category" validate:"required"`
	Subcategory string   `json:"subcategory" bson:"subcategory"`
	Brand       string   `json:"brand" bson:"brand" validate:"required"`
	Tags        []string `json:"tags" bson:"tags"`

	// Media
	ImageURL      string   `json:"image_url" bson:"image_url"`
	GalleryImages []string `json:"gallery_images" bson:"gallery_images"`

	// Pricing
	Price         float64  `json:"price" bson:"price" validate:"gt=0"`
	OriginalPrice *float64 `json:"original_price" bson:"original_price,omitempty"`

	// Inventory
	InStock       bool `json:"in_stock" bson:"in_stock"`
	StockQuantity int  `json:"stock_quantity" bson:"stock_quantity" validate:"gte=0"`
	IsRestricted  bool `json:"is_restricted" bson:"is_restricted"`

	// Details
	Specifications map[string]string `json:"specifications" bson:"specifications"`
	Features       []string          `json:"features" bson:"features"`
	Weight         *string           `json:"weight" bson:"weight,omitempty"`
	Dimensions     *string           `json:"dimensions" bson:"dimensions,omitempty"`

	// Reviews (denormalized)
	Rating      float64 `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	ReviewCount int     `json:"review_count" bson:"review_count" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreateProductInput is the admin payload for adding a catalog entry.
// Defaults mirror what the seed data assumes for omitted fields.
type CreateProductInput struct {
	Name           string            `json:"name" binding:"required"`
	Description    string            `json:"description" binding:"required"`
	Price          float64           `json:"price" binding:"required,gt=0"`
	OriginalPrice  *float64          `json:"original_price" binding:"omitempty,gt=0"`
	Category       string            `json:"category" binding:"required"`
	Subcategory    string            `json:"subcategory"`
	Brand          string            `json:"brand" binding:"required"`
	ImageURL       string            `json:"image_url"`
	GalleryImages  []string          `json:"gallery_images"`
	Rating         *float64          `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount    int               `json:"review_count" binding:"gte=0"`
	InStock        *bool             `json:"in_stock"`
	StockQuantity  *int              `json:"stock_quantity" binding:"omitempty,gte=0"`
	Specifications map[string]string `json:"specifications"`
	Features       []string          `json:"features"`
	Tags           []string          `json:"tags"`
	IsRestricted   bool              `json:"is_restricted"`
	Weight         *string           `json:"weight"`
	Dimensions     *string           `json:"dimensions"`
}

// PriceRange is the global min/max over the catalog.
type PriceRange struct {
	MinPrice float64 `json:"min_price" bson:"min_price"`
	MaxPrice float64 `json:"max_price" bson:"max_price"`
}

// DefaultPriceRange is reported for an empty catalog.
var DefaultPriceRange = PriceRange{MinPrice: 0, MaxPrice: 1000}
