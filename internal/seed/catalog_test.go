package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCatalogShape(t *testing.T) {
	c := Build(time.Now())

	assert.Len(t, c.Categories, 6)
	assert.Len(t, c.Brands, 6)
	assert.Len(t, c.Products, 8)

	categoryNames := map[string]bool{}
	for _, cat := range c.Categories {
		categoryNames[cat.Name] = true
		assert.NotEmpty(t, cat.ID)
	}
	brandNames := map[string]bool{}
	for _, b := range c.Brands {
		brandNames[b.Name] = true
	}

	ids := map[string]bool{}
	for _, p := range c.Products {
		assert.True(t, categoryNames[p.Category], "unknown category %q", p.Category)
		assert.True(t, brandNames[p.Brand], "unknown brand %q", p.Brand)
		assert.False(t, ids[p.ID], "duplicate id")
		ids[p.ID] = true
		assert.NotNil(t, p.GalleryImages)
		if p.OriginalPrice != nil {
			assert.Greater(t, *p.OriginalPrice, p.Price)
		}
	}
}
