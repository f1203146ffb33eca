package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/catalog"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Catalog catalog.Service
}

func NewProductHandler(svc catalog.Service) *ProductHandler {
	return &ProductHandler{Catalog: svc}
}

// parseProductQuery reads the public listing filters. Malformed numbers and
// booleans are rejected rather than ignored.
func parseProductQuery(c *gin.Context) (models.ProductQuery, error) {
	q := models.ProductQuery{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
		Limit:    models.DefaultProductLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, domain.BadRequest("limit must be an integer")
		}
		q.Limit = limit
	}
	if raw := c.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return q, domain.BadRequest("skip must be an integer")
		}
		q.Skip = skip
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, domain.BadRequest("min_price must be a number")
		}
		q.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, domain.BadRequest("max_price must be a number")
		}
		q.MaxPrice = &v
	}
	if raw := c.Query("in_stock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, domain.BadRequest("in_stock must be true or false")
		}
		q.InStock = &v
	}

	return q, q.Validate()
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	q, err := parseProductQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.Catalog.ListProducts(ctx, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	product, hit, err := h.Catalog.GetProduct(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) respondList(c *gin.Context, fetch func(context.Context) ([]models.Product, error)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := fetch(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Featured(c *gin.Context) {
	h.respondList(c, h.Catalog.Featured)
}

func (h *ProductHandler) Trending(c *gin.Context) {
	h.respondList(c, h.Catalog.Trending)
}

func (h *ProductHandler) Deals(c *gin.Context) {
	h.respondList(c, h.Catalog.Deals)
}

func (h *ProductHandler) NewArrivals(c *gin.Context) {
	h.respondList(c, h.Catalog.NewArrivals)
}

func (h *ProductHandler) PriceRange(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	pr, err := h.Catalog.PriceRange(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input models.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.Catalog.CreateProduct(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Product created", product))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Catalog.DeleteProduct(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Product deleted", nil))
}

func (h *ProductHandler) InitializeData(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.Catalog.Seed(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sample data initialized successfully",
		"counts":  result,
	})
}
