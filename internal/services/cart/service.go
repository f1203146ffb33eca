package cart

import (
	"context"
	"errors"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service interface {
	Add(ctx context.Context, owner models.Principal, input models.AddToCartInput) (models.Cart, error)
	UpdateQuantity(ctx context.Context, owner models.Principal, productID string, quantity int) (models.Cart, error)
	Remove(ctx context.Context, owner models.Principal, productID string) (models.Cart, error)
	Clear(ctx context.Context, owner models.Principal) error
	View(ctx context.Context, owner models.Principal) (models.CartView, error)
	// Get returns the stored cart without enrichment.
	Get(ctx context.Context, owner models.Principal) (models.Cart, error)
	// Discard deletes the cart after it was converted; failures are logged.
	Discard(ctx context.Context, owner models.Principal)
}

type service struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewService(carts repository.CartRepository, products repository.ProductRepository) Service {
	return &service{carts: carts, products: products, now: func() time.Time { return time.Now().UTC() }}
}

func checkStock(p models.Product, quantity int) error {
	if !p.InStock || p.StockQuantity < quantity {
		return domain.InsufficientStock("insufficient stock for %s: requested %d, available %d", p.Name, quantity, p.StockQuantity)
	}
	return nil
}

func (s *service) load(ctx context.Context, owner models.Principal) (models.Cart, bool, error) {
	cart, err := s.carts.Get(ctx, owner.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return models.Cart{}, false, nil
	}
	if err != nil {
		return models.Cart{}, false, err
	}
	return cart, true, nil
}

func (s *service) save(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.Recalculate()
	cart.UpdatedAt = s.now()
	if err := s.carts.Save(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (s *service) Add(ctx context.Context, owner models.Principal, input models.AddToCartInput) (models.Cart, error) {
	if input.Quantity < 1 {
		return models.Cart{}, domain.BadRequest("quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return models.Cart{}, err
	}

	cart, found, err := s.load(ctx, owner)
	if err != nil {
		return models.Cart{}, err
	}
	if !found {
		cart = models.Cart{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			OwnerKind: owner.Kind,
			Items:     []models.CartItem{},
			CreatedAt: s.now(),
		}
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ProductID == input.ProductID {
			idx = i
			break
		}
	}

	quantity := input.Quantity
	if idx >= 0 {
		quantity += cart.Items[idx].Quantity
	}
	if err := checkStock(product, quantity); err != nil {
		return models.Cart{}, err
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}
	return s.save(ctx, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, owner models.Principal, productID string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, domain.BadRequest("quantity must be at least 1")
	}

	cart, found, err := s.load(ctx, owner)
	if err != nil {
		return models.Cart{}, err
	}
	if !found {
		return models.Cart{}, domain.NotFound("cart not found")
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Cart{}, domain.NotFound("item not in cart")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := checkStock(product, quantity); err != nil {
		return models.Cart{}, err
	}

	cart.Items[idx].Quantity = quantity
	return s.save(ctx, cart)
}

func (s *service) Remove(ctx context.Context, owner models.Principal, productID string) (models.Cart, error) {
	cart, found, err := s.load(ctx, owner)
	if err != nil {
		return models.Cart{}, err
	}
	if !found {
		return models.Cart{}, domain.NotFound("cart not found")
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	return s.save(ctx, cart)
}

func (s *service) Clear(ctx context.Context, owner models.Principal) error {
	return s.carts.Delete(ctx, owner.ID)
}

func (s *service) Get(ctx context.Context, owner models.Principal) (models.Cart, error) {
	cart, found, err := s.load(ctx, owner)
	if err != nil {
		return models.Cart{}, err
	}
	if !found {
		return models.Cart{OwnerID: owner.ID, OwnerKind: owner.Kind, Items: []models.CartItem{}}, nil
	}
	return cart, nil
}

// View joins each line with the current product. Lines whose product no
// longer exists are left out; the stored total is reported unchanged.
func (s *service) View(ctx context.Context, owner models.Principal) (models.CartView, error) {
	cart, found, err := s.load(ctx, owner)
	if err != nil {
		return models.CartView{}, err
	}
	view := models.CartView{Items: []models.CartLine{}}
	if !found {
		return view, nil
	}

	view.ID = cart.ID
	view.Total = cart.Total
	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.CartView{}, err
		}
		view.Items = append(view.Items, models.CartLine{CartItem: item, Product: product})
	}
	return view, nil
}

func (s *service) Discard(ctx context.Context, owner models.Principal) {
	if err := s.carts.Delete(ctx, owner.ID); err != nil {
		logrus.WithError(err).WithField("owner_id", owner.ID).Error("Failed to delete cart after checkout")
	}
}
