package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/developia-II/tacticalgear-backend/internal/payments"
	"github.com/developia-II/tacticalgear-backend/internal/services/order"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
)

const maxWebhookBytes = int64(65536)

type PaymentHandler struct {
	Orders order.Service
}

func NewPaymentHandler(svc order.Service) *PaymentHandler {
	return &PaymentHandler{Orders: svc}
}

func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	caller, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.Orders.CreatePaymentIntent(ctx, caller, c.Param("id"))
	if errors.Is(err, payments.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Payments are not configured"))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Payment intent created", result))
}

// HandleWebhook processes asynchronous events from Stripe
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Error reading request body"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err = h.Orders.HandlePaymentEvent(ctx, payload, c.GetHeader("Stripe-Signature"))
	switch {
	case errors.Is(err, payments.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Payments are not configured"))
	case errors.Is(err, payments.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid signature"))
	case err != nil:
		writeError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
