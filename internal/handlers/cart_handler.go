package handlers

import (
	"net/http"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{Carts: svc}
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input models.AddToCartInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.Carts.Add(ctx, owner, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Item added to cart", updated))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Carts.View(ctx, owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Cart fetched", view))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input models.UpdateCartItemInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.Carts.UpdateQuantity(ctx, owner, c.Param("product_id"), input.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Cart updated", updated))
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.Carts.Remove(ctx, owner, c.Param("product_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Item removed from cart", updated))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Carts.Clear(ctx, owner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Cart cleared", nil))
}
