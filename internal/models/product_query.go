package models

import (
	"regexp"
	"strings"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultProductLimit = 20
	MaxProductLimit     = 100
)

// ProductQuery is a catalog predicate plus pagination. The same value renders
// to a MongoDB filter and can be evaluated against a Product in memory, so
// both paths share one definition of what "matches" means.
type ProductQuery struct {
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	InStock  *bool

	// Fixed-view predicates.
	MinRating   *float64
	MinReviews  *int
	OnSale      bool
	NewestFirst bool

	Limit int
	Skip  int
}

func FeaturedQuery() ProductQuery {
	rating := 4.7
	return ProductQuery{MinRating: &rating, Limit: 8}
}

func TrendingQuery() ProductQuery {
	reviews := 100
	return ProductQuery{MinReviews: &reviews, Limit: 6}
}

func DealsQuery() ProductQuery {
	return ProductQuery{OnSale: true, Limit: 6}
}

func NewArrivalsQuery() ProductQuery {
	return ProductQuery{NewestFirst: true, Limit: 8}
}

func (q ProductQuery) Validate() error {
	if q.Limit < 1 || q.Limit > MaxProductLimit {
		return domain.BadRequest("limit must be between 1 and %d", MaxProductLimit)
	}
	if q.Skip < 0 {
		return domain.BadRequest("skip must be greater than or equal to 0")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return domain.BadRequest("min_price cannot be greater than max_price")
	}
	return nil
}

// Filter renders the predicate as a bson filter document.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.InStock != nil {
		filter["in_stock"] = *q.InStock
	}
	if q.Search != "" {
		pattern := regexp.QuoteMeta(q.Search)
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"tags": bson.M{"$in": bson.A{strings.ToLower(q.Search)}}},
		}
	}
	if q.MinRating != nil {
		filter["rating"] = bson.M{"$gte": *q.MinRating}
	}
	if q.MinReviews != nil {
		filter["review_count"] = bson.M{"$gte": *q.MinReviews}
	}
	if q.OnSale {
		// $gt excludes both a missing field and an explicit null.
		filter["original_price"] = bson.M{"$gt": 0}
	}

	return filter
}

// Sort returns nil to keep natural store order.
func (q ProductQuery) Sort() bson.D {
	if q.NewestFirst {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return nil
}

// Matches reports whether p satisfies the predicate part of q.
func (q ProductQuery) Matches(p Product) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Brand != "" && p.Brand != q.Brand {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.InStock != nil && p.InStock != *q.InStock {
		return false
	}
	if q.Search != "" && !matchesSearch(p, q.Search) {
		return false
	}
	if q.MinRating != nil && p.Rating < *q.MinRating {
		return false
	}
	if q.MinReviews != nil && p.ReviewCount < *q.MinReviews {
		return false
	}
	if q.OnSale && (p.OriginalPrice == nil || *p.OriginalPrice <= 0) {
		return false
	}
	return true
}

func matchesSearch(p Product, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if tag == needle {
			return true
		}
	}
	return false
}
