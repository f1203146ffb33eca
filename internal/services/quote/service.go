package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/notify"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
)

// CustomerLookup resolves the submitter of a quote.
type CustomerLookup interface {
	Lookup(ctx context.Context, id string) (models.Customer, bool, error)
}

type Service interface {
	Create(ctx context.Context, owner models.Principal, input models.CreateQuoteInput) (models.Quote, error)
	Mine(ctx context.Context, owner models.Principal) ([]models.Quote, error)
	All(ctx context.Context) ([]models.QuoteWithCustomer, error)
	Get(ctx context.Context, id string) (models.QuoteWithCustomer, error)
	UpdateStatus(ctx context.Context, id string, input models.UpdateQuoteStatusInput) (models.Quote, error)
	UpdatePricing(ctx context.Context, id string, input models.UpdateQuotePricingInput) (models.Quote, error)
	SendEmail(ctx context.Context, id string) (models.Quote, error)
	Export(ctx context.Context) (*xlsx.File, error)
}

type service struct {
	quotes    repository.QuoteRepository
	carts     cart.Service
	customers CustomerLookup
	mailer    notify.Mailer
	now       func() time.Time
}

func NewService(quotes repository.QuoteRepository, carts cart.Service, customers CustomerLookup, mailer notify.Mailer) Service {
	if mailer == nil {
		mailer = notify.LogMailer{}
	}
	return &service{
		quotes:    quotes,
		carts:     carts,
		customers: customers,
		mailer:    mailer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, owner models.Principal, input models.CreateQuoteInput) (models.Quote, error) {
	if !owner.IsCustomer() {
		return models.Quote{}, domain.Forbidden("only users and dealers can request quotes")
	}
	if len(input.Items) == 0 {
		return models.Quote{}, domain.BadRequest("quote needs at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return models.Quote{}, domain.BadRequest("quote item is missing product_id")
		}
		if item.Quantity < 1 {
			return models.Quote{}, domain.BadRequest("quantity for %s must be at least 1", item.ProductID)
		}
		if item.Price < 0 {
			return models.Quote{}, domain.BadRequest("price for %s cannot be negative", item.ProductID)
		}
	}

	now := s.now()
	quote := models.Quote{
		ID:              uuid.NewString(),
		UserID:          owner.ID,
		UserKind:        owner.Kind,
		Items:           input.Items,
		ProjectName:     input.ProjectName,
		IntendedUse:     input.IntendedUse,
		DeliveryDate:    input.DeliveryDate,
		DeliveryAddress: input.DeliveryAddress,
		BillingAddress:  input.BillingAddress,
		CompanySize:     input.CompanySize,
		BudgetRange:     input.BudgetRange,
		Notes:           input.Notes,
		Status:          models.QuotePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	quote.Recalculate()

	if err := s.quotes.Create(ctx, quote); err != nil {
		return models.Quote{}, err
	}
	s.carts.Discard(ctx, owner)

	logrus.WithFields(logrus.Fields{"quote_id": quote.ID, "user_id": owner.ID}).Info("Quote requested")
	return quote, nil
}

func (s *service) Mine(ctx context.Context, owner models.Principal) ([]models.Quote, error) {
	return s.quotes.ListByUser(ctx, owner.ID)
}

func (s *service) withCustomer(ctx context.Context, quote models.Quote) (models.QuoteWithCustomer, error) {
	row := models.QuoteWithCustomer{Quote: quote}
	customer, ok, err := s.customers.Lookup(ctx, quote.UserID)
	if err != nil {
		return models.QuoteWithCustomer{}, err
	}
	if ok {
		row.Customer = &customer
	}
	return row, nil
}

func (s *service) All(ctx context.Context) ([]models.QuoteWithCustomer, error) {
	quotes, err := s.quotes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.QuoteWithCustomer, 0, len(quotes))
	for _, q := range quotes {
		row, err := s.withCustomer(ctx, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (models.QuoteWithCustomer, error) {
	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return models.QuoteWithCustomer{}, err
	}
	return s.withCustomer(ctx, quote)
}

func (s *service) UpdateStatus(ctx context.Context, id string, input models.UpdateQuoteStatusInput) (models.Quote, error) {
	if !input.Status.Valid() {
		return models.Quote{}, domain.BadRequest("invalid quote status %q", input.Status)
	}

	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return models.Quote{}, err
	}
	if !quote.Status.CanTransition(input.Status) {
		return models.Quote{}, domain.BadRequest("cannot move quote from %s to %s", quote.Status, input.Status)
	}

	quote.Status = input.Status
	quote.AdminNotes = input.AdminNotes
	quote.UpdatedAt = s.now()
	if err := s.quotes.Save(ctx, quote); err != nil {
		return models.Quote{}, err
	}
	return quote, nil
}

// UpdatePricing applies admin prices and approves the quote. An explicit
// total_amount wins over the recomputed one.
func (s *service) UpdatePricing(ctx context.Context, id string, input models.UpdateQuotePricingInput) (models.Quote, error) {
	if input.TotalAmount != nil && *input.TotalAmount < 0 {
		return models.Quote{}, domain.BadRequest("total_amount cannot be negative")
	}
	for _, item := range input.Items {
		if item.Price < 0 {
			return models.Quote{}, domain.BadRequest("price for %s cannot be negative", item.ProductID)
		}
	}

	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return models.Quote{}, err
	}
	if quote.Status == models.QuoteDeclined {
		return models.Quote{}, domain.BadRequest("declined quotes cannot be re-priced")
	}

	onQuote := make(map[string]int, len(quote.Items))
	for i, item := range quote.Items {
		onQuote[item.ProductID] = i
	}
	for _, item := range input.Items {
		i, ok := onQuote[item.ProductID]
		if !ok {
			return models.Quote{}, domain.BadRequest("product %s is not on this quote", item.ProductID)
		}
		quote.Items[i].Price = item.Price
	}

	quote.Recalculate()
	if input.TotalAmount != nil {
		quote.TotalAmount = *input.TotalAmount
	}
	if notes := strings.TrimSpace(input.AdminNotes); notes != "" {
		if quote.AdminNotes != "" {
			quote.AdminNotes += "\n"
		}
		quote.AdminNotes += notes
	}
	quote.Status = models.QuoteApproved
	quote.UpdatedAt = s.now()

	if err := s.quotes.Save(ctx, quote); err != nil {
		return models.Quote{}, err
	}
	return quote, nil
}

func (s *service) SendEmail(ctx context.Context, id string) (models.Quote, error) {
	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return models.Quote{}, err
	}

	customer, ok, err := s.customers.Lookup(ctx, quote.UserID)
	if err != nil {
		return models.Quote{}, err
	}
	if !ok || customer.Email == "" {
		return models.Quote{}, domain.BadRequest("quote customer has no email on file")
	}

	msg := notify.Message{
		To:      customer.Email,
		Subject: fmt.Sprintf("Your TacticalGear quote: %s", quote.ProjectName),
		Body:    renderSummary(quote, customer),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return models.Quote{}, err
	}

	now := s.now()
	quote.LastEmailedAt = &now
	quote.UpdatedAt = now
	if err := s.quotes.Save(ctx, quote); err != nil {
		return models.Quote{}, err
	}
	return quote, nil
}

func renderSummary(q models.Quote, c models.Customer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", c.Name)
	fmt.Fprintf(&b, "Here is the current state of your quote for %q.\n\n", q.ProjectName)
	fmt.Fprintf(&b, "Status: %s\n", q.Status)
	for _, item := range q.Items {
		fmt.Fprintf(&b, "  %d x %s @ $%.2f\n", item.Quantity, itemName(item), item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", q.TotalAmount)
	if q.AdminNotes != "" {
		fmt.Fprintf(&b, "\nNotes from our team:\n%s\n", q.AdminNotes)
	}
	b.WriteString("\nReply to this email or use the in-app chat with any questions.\n")
	return b.String()
}

func itemName(item models.QuoteItem) string {
	if item.ProductName != "" {
		return item.ProductName
	}
	return item.ProductID
}

var exportHeaders = []string{
	"ID", "Customer", "Email", "Company", "Kind", "Project", "Status",
	"Items", "Total", "Delivery Date", "Delivery Address", "Created At", "Updated At",
}

func (s *service) Export(ctx context.Context) (*xlsx.File, error) {
	rows, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Quotes")
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, q := range rows {
		var customer models.Customer
		if q.Customer != nil {
			customer = *q.Customer
		}
		itemCount := 0
		for _, item := range q.Items {
			itemCount += item.Quantity
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(q.ID)
		row.AddCell().SetValue(customer.Name)
		row.AddCell().SetValue(customer.Email)
		row.AddCell().SetValue(customer.Company)
		row.AddCell().SetValue(string(q.UserKind))
		row.AddCell().SetValue(q.ProjectName)
		row.AddCell().SetValue(string(q.Status))
		row.AddCell().SetValue(itemCount)
		row.AddCell().SetValue(q.TotalAmount)
		row.AddCell().SetValue(q.DeliveryDate)
		row.AddCell().SetValue(q.DeliveryAddress)
		row.AddCell().SetValue(q.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(q.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
