package middleware

import (
	"net/http"
	"strings"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenVerifier is satisfied by *utils.TokenManager.
type TokenVerifier interface {
	Verify(token string) (models.Principal, error)
}

func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Authorization header is required"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Authorization header must be Bearer token"))
			c.Abort()
			return
		}

		principal, err := tokens.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse(err.Error()))
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set("userId", principal.ID)
		c.Next()
	}
}

// RequireKinds rejects authenticated callers whose principal kind is not
// listed. It must run after AuthMiddleware.
func RequireKinds(allowed ...models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required"))
			c.Abort()
			return
		}

		for _, kind := range allowed {
			if principal.Kind == kind {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to access this resource"))
		c.Abort()
	}
}

func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// SetPrincipal is used by handlers that authenticate outside the header
// flow, such as the websocket query token.
func SetPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
	c.Set("userId", p.ID)
}
