package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/order"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Orders order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{Orders: svc}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input models.PlaceOrderInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	placed, err := h.Orders.Checkout(ctx, owner, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Order placed successfully", placed))
}

func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.Orders.List(ctx, owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Orders fetched", orders))
}

func (h *OrderHandler) GetOrderById(c *gin.Context) {
	caller, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	found, err := h.Orders.Get(ctx, caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Order fetched", found))
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Orders fetched", orders))
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var input models.UpdateOrderStatusInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.Orders.UpdateStatus(ctx, c.Param("id"), input.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Order status updated", updated))
}
