package quote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/developia-II/tacticalgear-backend/internal/services/quote"
	"github.com/developia-II/tacticalgear-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookup map[string]models.Customer

func (l lookup) Lookup(_ context.Context, id string) (models.Customer, bool, error) {
	c, ok := l[id]
	return c, ok, nil
}

var dealer = models.Principal{Kind: models.PrincipalDealer, ID: "dealer-1"}

type fixture struct {
	carts  cart.Service
	mailer *testutil.Mailer
	svc    quote.Service
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore()
	require.NoError(t, store.Products().Create(context.Background(), testutil.Product("p1", 50, 100)))
	carts := cart.NewService(store.Carts(), store.Products())
	mailer := &testutil.Mailer{}
	customers := lookup{
		dealer.ID: {ID: dealer.ID, Kind: models.PrincipalDealer, Name: "Sam Reyes", Email: "sam@frontrange.example", Company: "Front Range Supply"},
	}
	return fixture{carts: carts, mailer: mailer, svc: quote.NewService(store.Quotes(), carts, customers, mailer)}
}

func request() models.CreateQuoteInput {
	return models.CreateQuoteInput{
		Items: []models.QuoteItem{
			{ProductID: "p1", ProductName: "Plate", Quantity: 10, Price: 50},
			{ProductID: "p2", ProductName: "Helmet", Quantity: 4, Price: 120.5},
		},
		ProjectName:     "County SWAT refresh",
		DeliveryAddress: "100 Depot Rd",
	}
}

func TestCreateQuote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.carts.Add(ctx, dealer, models.AddToCartInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	q, err := f.svc.Create(ctx, dealer, request())
	require.NoError(t, err)
	assert.Equal(t, models.QuotePending, q.Status)
	assert.Equal(t, 982.0, q.TotalAmount)
	assert.Equal(t, models.PrincipalDealer, q.UserKind)

	c, err := f.carts.Get(ctx, dealer)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	mine, err := f.svc.Mine(ctx, dealer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreateQuoteValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dealer, models.CreateQuoteInput{ProjectName: "x"})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	bad := request()
	bad.Items[0].Quantity = 0
	_, err = f.svc.Create(ctx, dealer, bad)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = f.svc.Create(ctx, models.Principal{Kind: models.PrincipalAdmin, ID: "a"}, request())
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestStatusWorkflow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	q, err := f.svc.Create(ctx, dealer, request())
	require.NoError(t, err)

	reviewed, err := f.svc.UpdateStatus(ctx, q.ID, models.UpdateQuoteStatusInput{Status: models.QuoteReviewed, AdminNotes: "checking stock"})
	require.NoError(t, err)
	assert.Equal(t, "checking stock", reviewed.AdminNotes)

	_, err = f.svc.UpdateStatus(ctx, q.ID, models.UpdateQuoteStatusInput{Status: models.QuotePending})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = f.svc.UpdateStatus(ctx, q.ID, models.UpdateQuoteStatusInput{Status: models.QuoteDeclined})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, q.ID, models.UpdateQuoteStatusInput{Status: models.QuoteApproved})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = f.svc.UpdatePricing(ctx, q.ID, models.UpdateQuotePricingInput{})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = f.svc.UpdateStatus(ctx, "missing", models.UpdateQuoteStatusInput{Status: models.QuoteReviewed})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdatePricingApproves(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	q, err := f.svc.Create(ctx, dealer, request())
	require.NoError(t, err)

	priced, err := f.svc.UpdatePricing(ctx, q.ID, models.UpdateQuotePricingInput{
		Items:      []models.QuoteItemPrice{{ProductID: "p1", Price: 45}},
		AdminNotes: "volume discount",
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuoteApproved, priced.Status)
	assert.Equal(t, 932.0, priced.TotalAmount)
	assert.Equal(t, "volume discount", priced.AdminNotes)

	total := 900.0
	priced, err = f.svc.UpdatePricing(ctx, q.ID, models.UpdateQuotePricingInput{TotalAmount: &total, AdminNotes: "rounded"})
	require.NoError(t, err)
	assert.Equal(t, 900.0, priced.TotalAmount)
	assert.Equal(t, "volume discount\nrounded", priced.AdminNotes)
}

func TestUpdatePricingRejectsUnknownProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	q, err := f.svc.Create(ctx, dealer, request())
	require.NoError(t, err)

	_, err = f.svc.UpdatePricing(ctx, q.ID, models.UpdateQuotePricingInput{
		Items: []models.QuoteItemPrice{{ProductID: "p1", Price: 45}, {ProductID: "p9", Price: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	got, err := f.svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotePending, got.Status)
	assert.Equal(t, 982.0, got.TotalAmount)
	assert.Equal(t, 50.0, got.Items[0].Price)
}

func TestSendEmailKeepsStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	q, err := f.svc.Create(ctx, dealer, request())
	require.NoError(t, err)

	sent, err := f.svc.SendEmail(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotePending, sent.Status)
	assert.NotNil(t, sent.LastEmailedAt)

	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "sam@frontrange.example", f.mailer.Sent[0].To)
	assert.Contains(t, f.mailer.Sent[0].Body, "County SWAT refresh")
	assert.Contains(t, f.mailer.Sent[0].Body, "Total: $982.00")

	got, err := f.svc.Get(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "Front Range Supply", got.Customer.Company)

	f.mailer.Err = errors.New("smtp down")
	_, err = f.svc.SendEmail(ctx, q.ID)
	assert.Error(t, err)
}

func TestSendEmailWithoutCustomer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	stranger := models.Principal{Kind: models.PrincipalUser, ID: "ghost"}
	q, err := f.svc.Create(ctx, stranger, request())
	require.NoError(t, err)

	_, err = f.svc.SendEmail(ctx, q.ID)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	assert.Empty(t, f.mailer.Sent)

	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].Customer)
}

func TestExport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, dealer, request())
	require.NoError(t, err)

	file, err := f.svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Sam Reyes", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "County SWAT refresh", sheet.Rows[1].Cells[5].Value)
}
