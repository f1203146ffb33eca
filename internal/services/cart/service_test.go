package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/developia-II/tacticalgear-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buyer = models.Principal{Kind: models.PrincipalUser, ID: "user-1"}

func setup(t *testing.T, products ...models.Product) (*testutil.Store, cart.Service) {
	t.Helper()
	store := testutil.NewStore()
	for _, p := range products {
		require.NoError(t, store.Products().Create(context.Background(), p))
	}
	return store, cart.NewService(store.Carts(), store.Products())
}

func TestAddMergesQuantities(t *testing.T) {
	_, svc := setup(t, testutil.Product("p1", 19.99, 10))
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	c, err := svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 59.97, c.Total)
}

func TestTotalMatchesLines(t *testing.T) {
	_, svc := setup(t,
		testutil.Product("p1", 0.1, 50),
		testutil.Product("p2", 0.2, 50),
		testutil.Product("p3", 129.99, 50),
	)
	ctx := context.Background()

	for _, in := range []models.AddToCartInput{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 7},
		{ProductID: "p3", Quantity: 2},
	} {
		_, err := svc.Add(ctx, buyer, in)
		require.NoError(t, err)
	}
	c, err := svc.UpdateQuantity(ctx, buyer, "p2", 4)
	require.NoError(t, err)

	assert.Equal(t, models.SumLines(c.Items, func(i models.CartItem) (int, float64) { return i.Quantity, i.Price }), c.Total)
	assert.Equal(t, 261.08, c.Total)

	c, err = svc.Remove(ctx, buyer, "p3")
	require.NoError(t, err)
	assert.Equal(t, 1.1, c.Total)
}

func TestAddRejectsOverStock(t *testing.T) {
	_, svc := setup(t, testutil.Product("p1", 10, 3), testutil.Product("gone", 10, 0))
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	_, err = svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 2})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "gone", Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	c, err := svc.Get(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 20.0, c.Total)

	_, err = svc.UpdateQuantity(ctx, buyer, "p1", 4)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestAddValidation(t *testing.T) {
	_, svc := setup(t, testutil.Product("p1", 10, 3))
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "nope", Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMissingCart(t *testing.T) {
	_, svc := setup(t, testutil.Product("p1", 10, 3))
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, buyer, "p1", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.Remove(ctx, buyer, "p1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	view, err := svc.View(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestViewSkipsDeletedProducts(t *testing.T) {
	store, svc := setup(t, testutil.Product("p1", 10, 5), testutil.Product("p2", 5, 5))
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p2", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, store.Products().Delete(ctx, "p2"))

	view, err := svc.View(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].Product.ID)
	assert.Equal(t, 20.0, view.Total)
}

func TestCartsAreIsolatedPerOwner(t *testing.T) {
	_, svc := setup(t, testutil.Product("p1", 10, 5))
	ctx := context.Background()
	dealer := models.Principal{Kind: models.PrincipalDealer, ID: "dealer-1"}

	_, err := svc.Add(ctx, buyer, models.AddToCartInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	c, err := svc.Get(ctx, dealer)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	require.NoError(t, svc.Clear(ctx, buyer))
	c, err = svc.Get(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
