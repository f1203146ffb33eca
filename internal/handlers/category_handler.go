package handlers

import (
	"net/http"

	"github.com/developia-II/tacticalgear-backend/internal/services/catalog"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Catalog catalog.Service
}

func NewCategoryHandler(svc catalog.Service) *CategoryHandler {
	return &CategoryHandler{Catalog: svc}
}

func (h *CategoryHandler) listCategories(c *gin.Context, withCounts bool) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := h.Catalog.Categories(ctx, withCounts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) listBrands(c *gin.Context, withCounts bool) {
	ctx, cancel := requestContext(c)
	defer cancel()

	brands, err := h.Catalog.Brands(ctx, withCounts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) { h.listCategories(c, false) }

func (h *CategoryHandler) GetCategoriesWithCounts(c *gin.Context) { h.listCategories(c, true) }

func (h *CategoryHandler) GetBrands(c *gin.Context) { h.listBrands(c, false) }

func (h *CategoryHandler) GetBrandsWithCounts(c *gin.Context) { h.listBrands(c, true) }
