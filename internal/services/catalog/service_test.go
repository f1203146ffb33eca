package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/seed"
	"github.com/developia-II/tacticalgear-backend/internal/services/catalog"
	"github.com/developia-II/tacticalgear-backend/internal/testutil"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *testutil.Store
	cache *testutil.Cache
	svc   catalog.Service
}

func newSeeded(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore()
	c := testutil.NewCache()
	svc := catalog.NewService(store.Products(), store.Categories(), c, &testutil.Uploader{URL: "https://cdn.example/img.png"})
	_, err := svc.Seed(context.Background())
	require.NoError(t, err)
	return fixture{store: store, cache: c, svc: svc}
}

func TestSeedReportsCounts(t *testing.T) {
	f := newSeeded(t)
	res, err := f.svc.Seed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, catalog.SeedResult{Categories: 6, Brands: 6, Products: 8}, res)
	// Re-seeding replaces rather than appends.
	all, err := f.svc.ListProducts(context.Background(), models.ProductQuery{Limit: models.MaxProductLimit})
	require.NoError(t, err)
	assert.Len(t, all, 8)
	assert.Equal(t, 2, f.cache.Flushes)
}

func TestFixedViews(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()

	featured, err := f.svc.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 5)
	for _, p := range featured {
		assert.GreaterOrEqual(t, p.Rating, 4.7)
	}

	trending, err := f.svc.Trending(ctx)
	require.NoError(t, err)
	assert.Len(t, trending, 4)
	for _, p := range trending {
		assert.GreaterOrEqual(t, p.ReviewCount, 100)
	}

	deals, err := f.svc.Deals(ctx)
	require.NoError(t, err)
	assert.Len(t, deals, 2)
	for _, p := range deals {
		require.NotNil(t, p.OriginalPrice)
		assert.Greater(t, *p.OriginalPrice, p.Price)
	}

	arrivals, err := f.svc.NewArrivals(ctx)
	require.NoError(t, err)
	require.Len(t, arrivals, 8)
	for i := 1; i < len(arrivals); i++ {
		assert.False(t, arrivals[i].CreatedAt.After(arrivals[i-1].CreatedAt))
	}
}

func TestListProductsFilters(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()

	armor, err := f.svc.ListProducts(ctx, models.ProductQuery{Category: seed.CategoryBodyArmor, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, armor, 3)
	for _, p := range armor {
		assert.Equal(t, seed.CategoryBodyArmor, p.Category)
	}

	maxPrice := 100.0
	cheap, err := f.svc.ListProducts(ctx, models.ProductQuery{MaxPrice: &maxPrice, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	_, err = f.svc.ListProducts(ctx, models.ProductQuery{Limit: 0})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestPriceRange(t *testing.T) {
	f := newSeeded(t)
	pr, err := f.svc.PriceRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PriceRange{MinPrice: 39.99, MaxPrice: 2499.99}, pr)

	empty := catalog.NewService(testutil.NewStore().Products(), testutil.NewStore().Categories(), nil, nil)
	pr, err = empty.PriceRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPriceRange, pr)
}

func TestCountsByCategoryAndBrand(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()

	categories, err := f.svc.Categories(ctx, true)
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, c := range categories {
		counts[c.Name] = c.ProductCount
	}
	assert.Equal(t, int64(3), counts[seed.CategoryBodyArmor])
	assert.Equal(t, int64(0), counts[seed.CategoryTraining])

	brands, err := f.svc.Brands(ctx, true)
	require.NoError(t, err)
	var total int64
	for _, b := range brands {
		total += b.ProductCount
		if b.Name == "Ops-Core" {
			assert.Equal(t, int64(3), b.ProductCount)
		}
	}
	assert.Equal(t, int64(8), total)

	plain, err := f.svc.Categories(ctx, false)
	require.NoError(t, err)
	for _, c := range plain {
		assert.Zero(t, c.ProductCount)
	}
}

func TestGetProductUsesCache(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()
	products, err := f.svc.Featured(ctx)
	require.NoError(t, err)
	id := products[0].ID

	_, hit, err := f.svc.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.False(t, hit)

	got, hit, err := f.svc.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, id, got.ID)

	_, _, err = f.svc.GetProduct(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateProductDefaults(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, models.CreateProductInput{
		Name:        "Plate Carrier",
		Description: "Low profile carrier",
		Price:       199.99,
		Category:    seed.CategoryBodyArmor,
		Brand:       "Crye Precision",
		Tags:        []string{"Armor", "Carrier"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 4.5, p.Rating)
	assert.True(t, p.InStock)
	assert.Equal(t, 100, p.StockQuantity)
	assert.Equal(t, []string{"armor", "carrier"}, p.Tags)
	assert.NotNil(t, p.GalleryImages)

	lower := 150.0
	_, err = f.svc.CreateProduct(ctx, models.CreateProductInput{
		Name: "Bad Deal", Description: "x", Price: 199.99, OriginalPrice: &lower,
		Category: seed.CategoryGear, Brand: "Blackhawk",
	})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDeleteInvalidatesCache(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()
	products, err := f.svc.Featured(ctx)
	require.NoError(t, err)
	id := products[0].ID

	_, _, err = f.svc.GetProduct(ctx, id)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteProduct(ctx, id))

	_, _, err = f.svc.GetProduct(ctx, id)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, f.cache.Deletes, id)

	assert.True(t, errors.Is(f.svc.DeleteProduct(ctx, id), domain.ErrNotFound))
}

func TestUploadProductImage(t *testing.T) {
	f := newSeeded(t)
	ctx := context.Background()
	products, err := f.svc.Featured(ctx)
	require.NoError(t, err)
	id := products[0].ID

	updated, err := f.svc.UploadProductImage(ctx, id, bytes.NewReader([]byte("png")), "front.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img.png", updated.ImageURL)
	assert.Contains(t, updated.GalleryImages, "https://cdn.example/img.png")

	disabled := catalog.NewService(f.store.Products(), f.store.Categories(), nil, nil)
	_, err = disabled.UploadProductImage(ctx, id, bytes.NewReader(nil), "x.png")
	assert.True(t, errors.Is(err, utils.ErrUploadsDisabled))
}
