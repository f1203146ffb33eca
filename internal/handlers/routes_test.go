package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/handlers"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/seed"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/developia-II/tacticalgear-backend/internal/services/catalog"
	"github.com/developia-II/tacticalgear-backend/internal/services/chat"
	"github.com/developia-II/tacticalgear-backend/internal/services/identity"
	"github.com/developia-II/tacticalgear-backend/internal/services/order"
	"github.com/developia-II/tacticalgear-backend/internal/services/quote"
	"github.com/developia-II/tacticalgear-backend/internal/testutil"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *testutil.Store
	tokens *utils.TokenManager
	mailer *testutil.Mailer
}

func newTestServer(t *testing.T, allowSeed bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewStore()
	tokens := utils.NewTokenManager("handler-test-secret", time.Hour)
	mailer := &testutil.Mailer{}
	directory := identity.NewDirectory(store.Users(), store.Dealers())
	hub := chat.NewHub()
	carts := cart.NewService(store.Carts(), store.Products())

	deps := handlers.Dependencies{
		Catalog:   catalog.NewService(store.Products(), store.Categories(), testutil.NewCache(), nil),
		Identity:  identity.NewService(store.Users(), store.Dealers(), store.Admins(), tokens),
		Carts:     carts,
		Orders:    order.NewService(store.Orders(), carts, nil),
		Quotes:    quote.NewService(store.Quotes(), carts, directory, mailer),
		Chat:      chat.NewService(store.Chat(), store.Admins(), directory, hub),
		Hub:       hub,
		Status:    store.Status(),
		Tokens:    tokens,
		AllowSeed: allowSeed,
	}

	router := gin.New()
	handlers.SetupRoutes(router, deps)
	return &testServer{router: router, store: store, tokens: tokens, mailer: mailer}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T, kind models.PrincipalKind, id string) string {
	t.Helper()
	token, _, err := s.tokens.Generate(models.Principal{Kind: kind, ID: id})
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TacticalGear API v1.0", decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
}

func TestStatusChecks(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/status", "", map[string]string{"client_name": "probe"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "probe", decode[models.StatusCheck](t, w).ClientName)

	w = s.do(t, http.MethodPost, "/api/status", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.StatusCheck](t, w), 1)
}

func TestSeedGate(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do(t, http.MethodPost, "/api/initialize-data", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, true)
	w := s.do(t, http.MethodPost, "/api/initialize-data", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/products?category="+url.QueryEscape(seed.CategoryBodyArmor), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	armor := decode[[]models.Product](t, w)
	assert.Len(t, armor, 3)

	w = s.do(t, http.MethodGet, "/api/products/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Product](t, w), 5)

	w = s.do(t, http.MethodGet, "/api/products/price-range", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 39.99, decode[models.PriceRange](t, w).MinPrice)

	for _, bad := range []string{"limit=abc", "limit=0", "limit=101", "skip=-1", "min_price=50&max_price=10", "in_stock=maybe"} {
		w = s.do(t, http.MethodGet, "/api/products?"+bad, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}

	id := armor[0].ID
	w = s.do(t, http.MethodGet, "/api/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	w = s.do(t, http.MethodGet, "/api/products/"+id, "", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = s.do(t, http.MethodGet, "/api/products/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/categories/with-counts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range decode[[]models.Category](t, w) {
		if c.Name == seed.CategoryBodyArmor {
			assert.Equal(t, int64(3), c.ProductCount)
		}
	}
}

func TestAuthGuards(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	admin := s.token(t, models.PrincipalAdmin, "admin-1")
	w = s.do(t, http.MethodGet, "/api/cart", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	user := s.token(t, models.PrincipalUser, "user-1")
	w = s.do(t, http.MethodGet, "/api/admin/orders", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/orders", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/chat/someone-else", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShoppingFlow(t *testing.T) {
	s := newTestServer(t, true)
	ctx := context.Background()
	require.NoError(t, s.store.Products().Create(ctx, testutil.Product("plate", 150, 2)))

	w := s.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"email": "buyer@example.com", "password": "long-enough", "first_name": "Kim", "last_name": "Lee",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token := decode[envelope[models.AuthResult]](t, w).Data.AccessToken
	require.NotEmpty(t, token)

	w = s.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"email": "buyer@example.com", "password": "long-enough", "first_name": "Kim", "last_name": "Lee",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/cart/add", token, map[string]any{"product_id": "plate", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 300.0, decode[envelope[models.Cart]](t, w).Data.Total)

	w = s.do(t, http.MethodPost, "/api/cart/add", token, map[string]any{"product_id": "plate", "quantity": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/orders", token, map[string]string{"shipping_address": "9 Range Rd"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placed := decode[envelope[models.Order]](t, w).Data
	assert.Equal(t, models.OrderPending, placed.Status)
	assert.Equal(t, 300.0, placed.Total)

	w = s.do(t, http.MethodPost, "/api/orders", token, map[string]string{"shipping_address": "9 Range Rd"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := s.token(t, models.PrincipalUser, "someone-else")
	w = s.do(t, http.MethodGet, "/api/orders/"+placed.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/orders/"+placed.ID+"/payment-intent", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDealerPendingApproval(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/dealers/register", "", map[string]string{
		"email": "dealer@example.com", "password": "dealer-pass", "company_name": "Front Range Supply",
		"contact_name": "Sam Reyes", "phone": "555-0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	dealer := decode[envelope[models.Dealer]](t, w).Data

	w = s.do(t, http.MethodPost, "/api/dealers/login", "", map[string]string{"email": "dealer@example.com", "password": "dealer-pass"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := s.token(t, models.PrincipalAdmin, "admin-1")
	w = s.do(t, http.MethodPut, "/api/admin/dealers/"+dealer.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/dealers/login", "", map[string]string{"email": "dealer@example.com", "password": "dealer-pass"})
	assert.Equal(t, http.StatusOK, w.Code)
}
