package testutil

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/notify"
	"github.com/developia-II/tacticalgear-backend/internal/payments"
)

// Cache is a map-backed product cache that counts hits.
type Cache struct {
	mu      sync.Mutex
	items   map[string]models.Product
	Hits    int
	Flushes int
	Deletes []string
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]models.Product)}
}

func (c *Cache) Get(_ context.Context, id string) (models.Product, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[id]
	if ok {
		c.Hits++
	}
	return p, ok, nil
}

func (c *Cache) Set(_ context.Context, product models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[product.ID] = product
	return nil
}

func (c *Cache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.Deletes = append(c.Deletes, id)
	return nil
}

func (c *Cache) Flush(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]models.Product)
	c.Flushes++
	return nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Mailer records every message instead of sending it.
type Mailer struct {
	mu   sync.Mutex
	Sent []notify.Message
	Err  error
}

func (m *Mailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Gateway returns a fixed intent and replays Event from ParseEvent.
type Gateway struct {
	Intent   payments.Intent
	Event    payments.Event
	ParseErr error

	Amounts []int64
}

func (g *Gateway) CreateIntent(_ context.Context, _ string, amountCents int64, _ string) (payments.Intent, error) {
	g.Amounts = append(g.Amounts, amountCents)
	return g.Intent, nil
}

func (g *Gateway) ParseEvent([]byte, string) (payments.Event, error) {
	if g.ParseErr != nil {
		return payments.Event{}, g.ParseErr
	}
	return g.Event, nil
}

// Uploader reads the file and returns URL.
type Uploader struct {
	URL   string
	Bytes int
	Name  string
}

func (u *Uploader) Upload(_ context.Context, file io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.Bytes = len(data)
	u.Name = filename
	return u.URL, nil
}

// Product builds a valid in-stock product for tests.
func Product(id string, price float64, stock int) models.Product {
	return models.Product{
		ID:            id,
		Name:          "Product " + id,
		Description:   "Test product " + id,
		Category:      "Body Armor & Protection",
		Brand:         "ShieldTech",
		Tags:          []string{"test"},
		GalleryImages: []string{},
		Price:         price,
		InStock:       stock > 0,
		StockQuantity: stock,
		Rating:        4.5,
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
