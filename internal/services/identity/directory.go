package identity

import (
	"context"
	"errors"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
)

// Directory resolves a customer id to a display identity. Users are checked
// before dealers.
type Directory struct {
	users   repository.UserRepository
	dealers repository.DealerRepository
}

func NewDirectory(users repository.UserRepository, dealers repository.DealerRepository) *Directory {
	return &Directory{users: users, dealers: dealers}
}

// Lookup reports ok=false when id belongs to neither table.
func (d *Directory) Lookup(ctx context.Context, id string) (models.Customer, bool, error) {
	user, err := d.users.FindByID(ctx, id)
	if err == nil {
		return models.Customer{
			ID:      user.ID,
			Kind:    models.PrincipalUser,
			Name:    user.FullName(),
			Email:   user.Email,
			Company: user.Company,
		}, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return models.Customer{}, false, err
	}

	dealer, err := d.dealers.FindByID(ctx, id)
	if err == nil {
		return models.Customer{
			ID:      dealer.ID,
			Kind:    models.PrincipalDealer,
			Name:    dealer.ContactName,
			Email:   dealer.Email,
			Company: dealer.CompanyName,
		}, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return models.Customer{}, false, err
	}
	return models.Customer{}, false, nil
}
