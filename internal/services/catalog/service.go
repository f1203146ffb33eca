package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/cache"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/seed"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service interface {
	ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	// GetProduct reports whether the product was served from cache.
	GetProduct(ctx context.Context, id string) (models.Product, bool, error)
	Featured(ctx context.Context) ([]models.Product, error)
	Trending(ctx context.Context) ([]models.Product, error)
	Deals(ctx context.Context) ([]models.Product, error)
	NewArrivals(ctx context.Context) ([]models.Product, error)
	PriceRange(ctx context.Context) (models.PriceRange, error)

	Categories(ctx context.Context, withCounts bool) ([]models.Category, error)
	Brands(ctx context.Context, withCounts bool) ([]models.Brand, error)

	CreateProduct(ctx context.Context, input models.CreateProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadProductImage(ctx context.Context, id string, file io.Reader, filename string) (models.Product, error)

	Seed(ctx context.Context) (SeedResult, error)
}

type SeedResult struct {
	Categories int `json:"categories"`
	Brands     int `json:"brands"`
	Products   int `json:"products"`
}

type service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.ProductCache
	uploader   utils.ImageUploader
}

func NewService(products repository.ProductRepository, categories repository.CategoryRepository, productCache cache.ProductCache, uploader utils.ImageUploader) Service {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	if uploader == nil {
		uploader = utils.DisabledUploader{}
	}
	return &service{
		products:   products,
		categories: categories,
		cache:      productCache,
		uploader:   uploader,
	}
}

func (s *service) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.products.Find(ctx, q)
}

func (s *service) GetProduct(ctx context.Context, id string) (models.Product, bool, error) {
	if cached, ok, err := s.cache.Get(ctx, id); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache read failed")
	} else if ok {
		return cached, true, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, false, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache write failed")
	}
	return product, false, nil
}

func (s *service) Featured(ctx context.Context) ([]models.Product, error) {
	return s.products.Find(ctx, models.FeaturedQuery())
}

func (s *service) Trending(ctx context.Context) ([]models.Product, error) {
	return s.products.Find(ctx, models.TrendingQuery())
}

func (s *service) Deals(ctx context.Context) ([]models.Product, error) {
	return s.products.Find(ctx, models.DealsQuery())
}

func (s *service) NewArrivals(ctx context.Context) ([]models.Product, error) {
	return s.products.Find(ctx, models.NewArrivalsQuery())
}

func (s *service) PriceRange(ctx context.Context) (models.PriceRange, error) {
	pr, ok, err := s.products.PriceRange(ctx)
	if err != nil {
		return models.PriceRange{}, err
	}
	if !ok {
		return models.DefaultPriceRange, nil
	}
	return pr, nil
}

func (s *service) Categories(ctx context.Context, withCounts bool) ([]models.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if !withCounts {
		return categories, nil
	}

	counts, err := s.products.CountBy(ctx, "category")
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].Name]
	}
	return categories, nil
}

func (s *service) Brands(ctx context.Context, withCounts bool) ([]models.Brand, error) {
	brands, err := s.categories.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	if !withCounts {
		return brands, nil
	}

	counts, err := s.products.CountBy(ctx, "brand")
	if err != nil {
		return nil, err
	}
	for i := range brands {
		brands[i].ProductCount = counts[brands[i].Name]
	}
	return brands, nil
}

func (s *service) CreateProduct(ctx context.Context, input models.CreateProductInput) (models.Product, error) {
	product := models.Product{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		OriginalPrice:  input.OriginalPrice,
		Category:       input.Category,
		Subcategory:    input.Subcategory,
		Brand:          input.Brand,
		ImageURL:       input.ImageURL,
		GalleryImages:  nonNil(input.GalleryImages),
		Rating:         4.5,
		ReviewCount:    input.ReviewCount,
		InStock:        true,
		StockQuantity:  100,
		Specifications: input.Specifications,
		Features:       nonNil(input.Features),
		Tags:           lowerAll(input.Tags),
		IsRestricted:   input.IsRestricted,
		Weight:         input.Weight,
		Dimensions:     input.Dimensions,
		CreatedAt:      time.Now().UTC(),
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if product.Specifications == nil {
		product.Specifications = map[string]string{}
	}
	if product.OriginalPrice != nil && *product.OriginalPrice <= product.Price {
		return models.Product{}, domain.BadRequest("original_price must be greater than price")
	}

	if err := s.products.Create(ctx, product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) UploadProductImage(ctx context.Context, id string, file io.Reader, filename string) (models.Product, error) {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return models.Product{}, err
	}

	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("%s-%s", id, filename))
	if err != nil {
		return models.Product{}, fmt.Errorf("upload product image: %w", err)
	}

	product, err := s.products.SetImage(ctx, id, url)
	if err != nil {
		return models.Product{}, err
	}
	s.invalidate(ctx, id)
	return product, nil
}

// Seed replaces the whole catalog with the demo data.
func (s *service) Seed(ctx context.Context) (SeedResult, error) {
	data := seed.Build(time.Now().UTC())

	if err := s.categories.ReplaceCategories(ctx, data.Categories); err != nil {
		return SeedResult{}, err
	}
	if err := s.categories.ReplaceBrands(ctx, data.Brands); err != nil {
		return SeedResult{}, err
	}
	if err := s.products.ReplaceAll(ctx, data.Products); err != nil {
		return SeedResult{}, err
	}
	if err := s.cache.Flush(ctx); err != nil {
		logrus.WithError(err).Warn("Product cache flush failed after seeding")
	}

	logrus.WithFields(logrus.Fields{
		"categories": len(data.Categories),
		"brands":     len(data.Brands),
		"products":   len(data.Products),
	}).Info("Sample data initialized")

	return SeedResult{
		Categories: len(data.Categories),
		Brands:     len(data.Brands),
		Products:   len(data.Products),
	}, nil
}

func (s *service) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache delete failed")
	}
}
