package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func ptr[T any](v T) *T { return &v }

func TestProductQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   ProductQuery
		wantErr bool
	}{
		{"defaults", ProductQuery{Limit: DefaultProductLimit}, false},
		{"max limit", ProductQuery{Limit: MaxProductLimit}, false},
		{"zero limit", ProductQuery{Limit: 0}, true},
		{"limit too large", ProductQuery{Limit: MaxProductLimit + 1}, true},
		{"negative skip", ProductQuery{Limit: 10, Skip: -1}, true},
		{"inverted price range", ProductQuery{Limit: 10, MinPrice: ptr(50.0), MaxPrice: ptr(10.0)}, true},
		{"equal price bounds", ProductQuery{Limit: 10, MinPrice: ptr(10.0), MaxPrice: ptr(10.0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductQueryFilter(t *testing.T) {
	q := ProductQuery{
		Category: "Body Armor & Protection",
		MinPrice: ptr(10.0),
		Search:   "Plate (IV)",
		InStock:  ptr(true),
		OnSale:   true,
	}
	filter := q.Filter()

	assert.Equal(t, "Body Armor & Protection", filter["category"])
	assert.Equal(t, bson.M{"$gte": 10.0}, filter["price"])
	assert.Equal(t, true, filter["in_stock"])
	assert.Equal(t, bson.M{"$gt": 0}, filter["original_price"])

	or, ok := filter["$or"].(bson.A)
	if assert.True(t, ok) {
		assert.Len(t, or, 3)
		// Regex metacharacters in the search term are escaped.
		assert.Equal(t, bson.M{"$regex": `Plate \(IV\)`, "$options": "i"}, or[0].(bson.M)["name"])
		assert.Equal(t, bson.M{"$in": bson.A{"plate (iv)"}}, or[2].(bson.M)["tags"])
	}

	assert.Empty(t, ProductQuery{}.Filter())
	assert.Nil(t, ProductQuery{}.Sort())
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, NewArrivalsQuery().Sort())
}

func TestProductQueryMatches(t *testing.T) {
	p := Product{
		Name:          "Level IIIA Plate",
		Description:   "Soft armor insert",
		Category:      "Body Armor & Protection",
		Brand:         "ShieldTech",
		Tags:          []string{"armor", "ballistic"},
		Price:         299.99,
		OriginalPrice: ptr(399.99),
		InStock:       true,
		Rating:        4.8,
		ReviewCount:   156,
	}

	tests := []struct {
		name  string
		query ProductQuery
		want  bool
	}{
		{"empty", ProductQuery{}, true},
		{"category", ProductQuery{Category: "Body Armor & Protection"}, true},
		{"other category", ProductQuery{Category: "Tactical Apparel"}, false},
		{"brand", ProductQuery{Brand: "ShieldTech"}, true},
		{"price inside", ProductQuery{MinPrice: ptr(100.0), MaxPrice: ptr(300.0)}, true},
		{"price below min", ProductQuery{MinPrice: ptr(300.0)}, false},
		{"search name case-insensitive", ProductQuery{Search: "plate"}, true},
		{"search description", ProductQuery{Search: "INSERT"}, true},
		{"search tag", ProductQuery{Search: "Ballistic"}, true},
		{"search miss", ProductQuery{Search: "helmet"}, false},
		{"featured", FeaturedQuery(), true},
		{"trending", TrendingQuery(), true},
		{"deals", DealsQuery(), true},
		{"out of stock only", ProductQuery{InStock: ptr(false)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(p))
		})
	}

	noSale := p
	noSale.OriginalPrice = nil
	assert.False(t, DealsQuery().Matches(noSale))
}
