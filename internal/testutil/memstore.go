// Package testutil holds in-memory implementations of the repository
// interfaces and fakes for the external integrations. Every read returns a
// copy so callers cannot mutate stored state through shared slices.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
)

// Store backs every repository with maps guarded by one mutex.
type Store struct {
	mu sync.Mutex

	products   []models.Product
	categories []models.Category
	brands     []models.Brand
	users      map[string]models.User
	dealers    map[string]models.Dealer
	admins     map[string]models.Admin
	carts      map[string]models.Cart
	orders     map[string]models.Order
	quotes     map[string]models.Quote
	messages   []models.ChatMessage
	checks     []models.StatusCheck
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]models.User),
		dealers: make(map[string]models.Dealer),
		admins:  make(map[string]models.Admin),
		carts:   make(map[string]models.Cart),
		orders:  make(map[string]models.Order),
		quotes:  make(map[string]models.Quote),
	}
}

func cloneProduct(p models.Product) models.Product {
	p.Tags = append([]string(nil), p.Tags...)
	p.GalleryImages = append([]string(nil), p.GalleryImages...)
	p.Features = append([]string(nil), p.Features...)
	if p.Specifications != nil {
		specs := make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			specs[k] = v
		}
		p.Specifications = specs
	}
	return p
}

func cloneCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return c
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.CartItem{}, o.Items...)
	return o
}

func cloneQuote(q models.Quote) models.Quote {
	q.Items = append([]models.QuoteItem{}, q.Items...)
	return q
}

// Products

type ProductRepo struct{ s *Store }

func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Find(_ context.Context, q models.ProductQuery) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := []models.Product{}
	for _, p := range r.s.products {
		if q.Matches(p) {
			matched = append(matched, cloneProduct(p))
		}
	}
	if q.NewestFirst {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}
	if q.Skip >= len(matched) {
		return []models.Product{}, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id string) (models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return models.Product{}, domain.NotFound("product not found")
}

func (r *ProductRepo) Create(_ context.Context, product models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == product.ID {
			return domain.Conflict("product already exists")
		}
	}
	r.s.products = append(r.s.products, cloneProduct(product))
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.products {
		if p.ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("product not found")
}

func (r *ProductRepo) SetImage(_ context.Context, id, url string) (models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			r.s.products[i].ImageURL = url
			r.s.products[i].GalleryImages = append(r.s.products[i].GalleryImages, url)
			return cloneProduct(r.s.products[i]), nil
		}
	}
	return models.Product{}, domain.NotFound("product not found")
}

func (r *ProductRepo) CountBy(_ context.Context, field string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range r.s.products {
		switch field {
		case "category":
			counts[p.Category]++
		case "brand":
			counts[p.Brand]++
		}
	}
	return counts, nil
}

func (r *ProductRepo) PriceRange(_ context.Context) (models.PriceRange, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.products) == 0 {
		return models.PriceRange{}, false, nil
	}
	pr := models.PriceRange{MinPrice: r.s.products[0].Price, MaxPrice: r.s.products[0].Price}
	for _, p := range r.s.products[1:] {
		if p.Price < pr.MinPrice {
			pr.MinPrice = p.Price
		}
		if p.Price > pr.MaxPrice {
			pr.MaxPrice = p.Price
		}
	}
	return pr, true, nil
}

func (r *ProductRepo) ReplaceAll(_ context.Context, products []models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products = make([]models.Product, 0, len(products))
	for _, p := range products {
		r.s.products = append(r.s.products, cloneProduct(p))
	}
	return nil
}

// Categories and brands

type CategoryRepo struct{ s *Store }

func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) ListCategories(context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Category{}, r.s.categories...), nil
}

func (r *CategoryRepo) ListBrands(context.Context) ([]models.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Brand{}, r.s.brands...), nil
}

func (r *CategoryRepo) ReplaceCategories(_ context.Context, categories []models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories = append([]models.Category{}, categories...)
	return nil
}

func (r *CategoryRepo) ReplaceBrands(_ context.Context, brands []models.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.brands = append([]models.Brand{}, brands...)
	return nil
}

// Accounts

type UserRepo struct{ s *Store }

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, user models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.Conflict("user already exists")
		}
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, domain.NotFound("user not found")
}

func (r *UserRepo) FindByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return models.User{}, domain.NotFound("user not found")
}

func (r *UserRepo) List(context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := []models.User{}
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

type DealerRepo struct{ s *Store }

func (s *Store) Dealers() *DealerRepo { return &DealerRepo{s: s} }

func (r *DealerRepo) Create(_ context.Context, dealer models.Dealer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.dealers {
		if d.Email == dealer.Email {
			return domain.Conflict("dealer already exists")
		}
	}
	r.s.dealers[dealer.ID] = dealer
	return nil
}

func (r *DealerRepo) FindByEmail(_ context.Context, email string) (models.Dealer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.dealers {
		if d.Email == email {
			return d, nil
		}
	}
	return models.Dealer{}, domain.NotFound("dealer not found")
}

func (r *DealerRepo) FindByID(_ context.Context, id string) (models.Dealer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.dealers[id]; ok {
		return d, nil
	}
	return models.Dealer{}, domain.NotFound("dealer not found")
}

func (r *DealerRepo) List(_ context.Context, approved *bool) ([]models.Dealer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	dealers := []models.Dealer{}
	for _, d := range r.s.dealers {
		if approved != nil && d.IsApproved != *approved {
			continue
		}
		dealers = append(dealers, d)
	}
	sort.Slice(dealers, func(i, j int) bool { return dealers[i].CreatedAt.After(dealers[j].CreatedAt) })
	return dealers, nil
}

func (r *DealerRepo) Approve(_ context.Context, id string, at time.Time) (models.Dealer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.dealers[id]
	if !ok {
		return models.Dealer{}, domain.NotFound("dealer not found")
	}
	d.IsApproved = true
	d.ApprovedAt = &at
	r.s.dealers[id] = d
	return d, nil
}

type AdminRepo struct{ s *Store }

func (s *Store) Admins() *AdminRepo { return &AdminRepo{s: s} }

func (r *AdminRepo) Create(_ context.Context, admin models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Email == admin.Email {
			return domain.Conflict("admin already exists")
		}
	}
	r.s.admins[admin.ID] = admin
	return nil
}

func (r *AdminRepo) FindByEmail(_ context.Context, email string) (models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return models.Admin{}, domain.NotFound("admin not found")
}

func (r *AdminRepo) FindByID(_ context.Context, id string) (models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.admins[id]; ok {
		return a, nil
	}
	return models.Admin{}, domain.NotFound("admin not found")
}

// Carts

type CartRepo struct{ s *Store }

func (s *Store) Carts() *CartRepo { return &CartRepo{s: s} }

func (r *CartRepo) Get(_ context.Context, ownerID string) (models.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.carts[ownerID]; ok {
		return cloneCart(c), nil
	}
	return models.Cart{}, domain.NotFound("cart not found")
}

func (r *CartRepo) Save(_ context.Context, cart models.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.carts[cart.OwnerID] = cloneCart(cart)
	return nil
}

func (r *CartRepo) Delete(_ context.Context, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.carts, ownerID)
	return nil
}

// Orders

type OrderRepo struct{ s *Store }

func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, order models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; ok {
		return domain.Conflict("order already exists")
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) FindByID(_ context.Context, id string) (models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return models.Order{}, domain.NotFound("order not found")
}

func (r *OrderRepo) list(keep func(models.Order) bool) []models.Order {
	orders := []models.Order{}
	for _, o := range r.s.orders {
		if keep(o) {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders
}

func (r *OrderRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(o models.Order) bool { return o.OwnerID == ownerID }), nil
}

func (r *OrderRepo) ListAll(context.Context) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(models.Order) bool { return true }), nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return models.Order{}, domain.NotFound("order not found")
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[id] = o
	return cloneOrder(o), nil
}

func (r *OrderRepo) TransitionStatus(_ context.Context, id string, from, to models.OrderStatus) (models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return models.Order{}, domain.NotFound("order not found")
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[id] = o
	return cloneOrder(o), nil
}

func (r *OrderRepo) SetPaymentIntent(_ context.Context, id, paymentIntentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.NotFound("order not found")
	}
	o.PaymentIntentID = paymentIntentID
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[id] = o
	return nil
}

// Quotes

type QuoteRepo struct{ s *Store }

func (s *Store) Quotes() *QuoteRepo { return &QuoteRepo{s: s} }

func (r *QuoteRepo) Create(_ context.Context, quote models.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[quote.ID]; ok {
		return domain.Conflict("quote already exists")
	}
	r.s.quotes[quote.ID] = cloneQuote(quote)
	return nil
}

func (r *QuoteRepo) FindByID(_ context.Context, id string) (models.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if q, ok := r.s.quotes[id]; ok {
		return cloneQuote(q), nil
	}
	return models.Quote{}, domain.NotFound("quote not found")
}

func (r *QuoteRepo) list(keep func(models.Quote) bool) []models.Quote {
	quotes := []models.Quote{}
	for _, q := range r.s.quotes {
		if keep(q) {
			quotes = append(quotes, cloneQuote(q))
		}
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].CreatedAt.After(quotes[j].CreatedAt) })
	return quotes
}

func (r *QuoteRepo) ListByUser(_ context.Context, userID string) ([]models.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(q models.Quote) bool { return q.UserID == userID }), nil
}

func (r *QuoteRepo) ListAll(context.Context) ([]models.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(models.Quote) bool { return true }), nil
}

func (r *QuoteRepo) Save(_ context.Context, quote models.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[quote.ID]; !ok {
		return domain.NotFound("quote not found")
	}
	r.s.quotes[quote.ID] = cloneQuote(quote)
	return nil
}

// Chat

type ChatRepo struct{ s *Store }

func (s *Store) Chat() *ChatRepo { return &ChatRepo{s: s} }

func (r *ChatRepo) Append(_ context.Context, msg models.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages = append(r.s.messages, msg)
	return nil
}

func (r *ChatRepo) Thread(_ context.Context, userID string) ([]models.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	thread := []models.ChatMessage{}
	for _, m := range r.s.messages {
		if m.UserID == userID {
			thread = append(thread, m)
		}
	}
	sort.SliceStable(thread, func(i, j int) bool { return thread[i].CreatedAt.Before(thread[j].CreatedAt) })
	return thread, nil
}

func (r *ChatRepo) Conversations(context.Context) ([]models.ConversationSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byUser := map[string]*models.ConversationSummary{}
	for _, m := range r.s.messages {
		summary, ok := byUser[m.UserID]
		if !ok {
			summary = &models.ConversationSummary{UserID: m.UserID}
			byUser[m.UserID] = summary
		}
		summary.MessageCount++
		if !m.CreatedAt.Before(summary.LastMessageTime) {
			summary.LastMessage = m.Message
			summary.LastMessageTime = m.CreatedAt
		}
	}

	conversations := []models.ConversationSummary{}
	for _, summary := range byUser {
		conversations = append(conversations, *summary)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
	})
	return conversations, nil
}

// Status checks

type StatusRepo struct{ s *Store }

func (s *Store) Status() *StatusRepo { return &StatusRepo{s: s} }

func (r *StatusRepo) Create(_ context.Context, check models.StatusCheck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.checks = append(r.s.checks, check)
	return nil
}

func (r *StatusRepo) List(_ context.Context, limit int) ([]models.StatusCheck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	checks := append([]models.StatusCheck{}, r.s.checks...)
	if limit > 0 && len(checks) > limit {
		checks = checks[:limit]
	}
	return checks, nil
}
