package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(tokens), RequireKinds(models.PrincipalAdmin), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.String(http.StatusOK, p.ID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	adminToken, _, err := tokens.Generate(models.Principal{Kind: models.PrincipalAdmin, ID: "admin-1"})
	require.NoError(t, err)
	userToken, _, err := tokens.Generate(models.Principal{Kind: models.PrincipalUser, ID: "user-1"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong kind", header: "Bearer " + userToken, wantStatus: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, wantStatus: http.StatusOK, wantBody: "admin-1"},
	}

	r := newRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
