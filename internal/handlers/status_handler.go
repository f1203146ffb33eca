package handlers

import (
	"net/http"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const statusListLimit = 1000

type StatusHandler struct {
	Repo repository.StatusRepository
}

func NewStatusHandler(repo repository.StatusRepository) *StatusHandler {
	return &StatusHandler{Repo: repo}
}

func (h *StatusHandler) CreateStatusCheck(c *gin.Context) {
	var input models.StatusCheckInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	check := models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: input.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.Repo.Create(ctx, check); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *StatusHandler) GetStatusChecks(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	checks, err := h.Repo.List(ctx, statusListLimit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, checks)
}
