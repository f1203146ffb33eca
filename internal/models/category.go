package models

type Category struct {
	ID           string `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name" validate:"required"`
	Slug         string `json:"slug" bson:"slug" validate:"required"`
	Description  string `json:"description" bson:"description"`
	ImageURL     string `json:"image_url" bson:"image_url"`
	ProductCount int64  `json:"product_count" bson:"-"`
}

type Brand struct {
	ID           string  `json:"id" bson:"id"`
	Name         string  `json:"name" bson:"name" validate:"required"`
	LogoURL      string  `json:"logo_url" bson:"logo_url"`
	Description  string  `json:"description" bson:"description"`
	Website      *string `json:"website" bson:"website,omitempty"`
	ProductCount int64   `json:"product_count" bson:"-"`
}
