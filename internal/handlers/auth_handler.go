package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/identity"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Identity identity.Service
}

func NewAuthHandler(svc identity.Service) *AuthHandler {
	return &AuthHandler{Identity: svc}
}

func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var input models.RegisterUserInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.Identity.RegisterUser(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Account created", result))
}

func (h *AuthHandler) login(c *gin.Context, fn func(context.Context, models.LoginInput) (models.AuthResult, error)) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := fn(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Login successful", result))
}

func (h *AuthHandler) LoginUser(c *gin.Context) {
	h.login(c, h.Identity.LoginUser)
}

func (h *AuthHandler) RegisterDealer(c *gin.Context) {
	var input models.RegisterDealerInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	dealer, err := h.Identity.RegisterDealer(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Dealer application submitted and pending approval", dealer))
}

func (h *AuthHandler) LoginDealer(c *gin.Context) {
	h.login(c, h.Identity.LoginDealer)
}

func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	h.login(c, h.Identity.LoginAdmin)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	caller, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		profile any
		err     error
	)
	switch caller.Kind {
	case models.PrincipalUser:
		profile, err = h.Identity.UserProfile(ctx, caller.ID)
	case models.PrincipalDealer:
		profile, err = h.Identity.DealerProfile(ctx, caller.ID)
	case models.PrincipalAdmin:
		profile, err = h.Identity.AdminProfile(ctx, caller.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Profile fetched", profile))
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.Identity.ListUsers(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Users fetched", users))
}

func (h *AuthHandler) ListDealers(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, domain.BadRequest("approved must be true or false"))
			return
		}
		approved = &v
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	dealers, err := h.Identity.ListDealers(ctx, approved)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Dealers fetched", dealers))
}

func (h *AuthHandler) ApproveDealer(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	dealer, err := h.Identity.ApproveDealer(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Dealer approved", dealer))
}
