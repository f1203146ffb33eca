package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/quote"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type QuoteHandler struct {
	Quotes quote.Service
}

func NewQuoteHandler(svc quote.Service) *QuoteHandler {
	return &QuoteHandler{Quotes: svc}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input models.CreateQuoteInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.Quotes.Create(ctx, owner, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Quote request submitted", created))
}

func (h *QuoteHandler) GetMyQuotes(c *gin.Context) {
	owner, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	quotes, err := h.Quotes.Mine(ctx, owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Quotes fetched", quotes))
}

func (h *QuoteHandler) GetAllQuotes(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	quotes, err := h.Quotes.All(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Quotes fetched", quotes))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	found, err := h.Quotes.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Quote fetched", found))
}

func (h *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	var input models.UpdateQuoteStatusInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.Quotes.UpdateStatus(ctx, c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Quote status updated", updated))
}

func (h *QuoteHandler) UpdateQuotePricing(c *gin.Context) {
	var input models.UpdateQuotePricingInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.Quotes.UpdatePricing(ctx, c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Quote pricing updated", updated))
}

func (h *QuoteHandler) SendQuoteEmail(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	sent, err := h.Quotes.SendEmail(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Quote emailed to customer", sent))
}

func (h *QuoteHandler) ExportQuotes(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	file, err := h.Quotes.Export(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("quotes-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to write quote export")
	}
}
