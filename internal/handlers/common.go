package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/middleware"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindBadRequest:        http.StatusBadRequest,
	domain.KindUnauthorized:      http.StatusUnauthorized,
	domain.KindForbidden:         http.StatusForbidden,
	domain.KindConflict:          http.StatusConflict,
	domain.KindInsufficientStock: http.StatusConflict,
}

// writeError maps domain errors to their status. Anything else is logged and
// reported as a generic 500.
func writeError(c *gin.Context, err error) {
	if status, ok := statusByKind[domain.KindOf(err)]; ok {
		c.JSON(status, utils.ErrorResponse(err.Error()))
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error"))
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// mustPrincipal is only used behind AuthMiddleware, so a missing principal
// indicates a routing mistake.
func mustPrincipal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required"))
		return models.Principal{}, false
	}
	return p, true
}
