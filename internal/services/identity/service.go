package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service interface {
	RegisterUser(ctx context.Context, input models.RegisterUserInput) (models.AuthResult, error)
	LoginUser(ctx context.Context, input models.LoginInput) (models.AuthResult, error)
	RegisterDealer(ctx context.Context, input models.RegisterDealerInput) (models.Dealer, error)
	LoginDealer(ctx context.Context, input models.LoginInput) (models.AuthResult, error)
	LoginAdmin(ctx context.Context, input models.LoginInput) (models.AuthResult, error)

	UserProfile(ctx context.Context, id string) (models.User, error)
	DealerProfile(ctx context.Context, id string) (models.Dealer, error)
	AdminProfile(ctx context.Context, id string) (models.Admin, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	ListDealers(ctx context.Context, approved *bool) ([]models.Dealer, error)
	ApproveDealer(ctx context.Context, id string) (models.Dealer, error)

	// BootstrapAdmin creates the admin account when none exists for email.
	BootstrapAdmin(ctx context.Context, email, password string) error
}

type service struct {
	users   repository.UserRepository
	dealers repository.DealerRepository
	admins  repository.AdminRepository
	tokens  *utils.TokenManager
}

func NewService(users repository.UserRepository, dealers repository.DealerRepository, admins repository.AdminRepository, tokens *utils.TokenManager) Service {
	return &service{users: users, dealers: dealers, admins: admins, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) issue(kind models.PrincipalKind, id string, profile any) (models.AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(models.Principal{Kind: kind, ID: id})
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		Kind:        kind,
		Profile:     profile,
	}, nil
}

// emailTaken checks users and dealers so one storefront email maps to one
// customer.
func (s *service) emailTaken(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.Conflict("email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.dealers.FindByEmail(ctx, email); err == nil {
		return domain.Conflict("email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) RegisterUser(ctx context.Context, input models.RegisterUserInput) (models.AuthResult, error) {
	email := normalizeEmail(input.Email)
	if err := s.emailTaken(ctx, email); err != nil {
		return models.AuthResult{}, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Company:      input.Company,
		Phone:        input.Phone,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.AuthResult{}, err
	}

	return s.issue(models.PrincipalUser, user.ID, user)
}

func (s *service) LoginUser(ctx context.Context, input models.LoginInput) (models.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(input.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return models.AuthResult{}, domain.Unauthorized("invalid email or password")
	}
	if err != nil {
		return models.AuthResult{}, err
	}
	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		return models.AuthResult{}, domain.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return models.AuthResult{}, domain.Forbidden("account is deactivated")
	}
	return s.issue(models.PrincipalUser, user.ID, user)
}

// RegisterDealer does not issue a token; dealers cannot log in until approved.
func (s *service) RegisterDealer(ctx context.Context, input models.RegisterDealerInput) (models.Dealer, error) {
	email := normalizeEmail(input.Email)
	if err := s.emailTaken(ctx, email); err != nil {
		return models.Dealer{}, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return models.Dealer{}, fmt.Errorf("hash password: %w", err)
	}

	dealer := models.Dealer{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CompanyName:  input.CompanyName,
		ContactName:  input.ContactName,
		Phone:        input.Phone,
		TaxID:        input.TaxID,
		BusinessType: input.BusinessType,
		Address:      input.Address,
		IsApproved:   false,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.dealers.Create(ctx, dealer); err != nil {
		return models.Dealer{}, err
	}
	return dealer, nil
}

// LoginDealer checks approval before the password so an unapproved account
// always gets the same answer.
func (s *service) LoginDealer(ctx context.Context, input models.LoginInput) (models.AuthResult, error) {
	dealer, err := s.dealers.FindByEmail(ctx, normalizeEmail(input.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return models.AuthResult{}, domain.Unauthorized("invalid email or password")
	}
	if err != nil {
		return models.AuthResult{}, err
	}
	if !dealer.IsApproved {
		return models.AuthResult{}, domain.Forbidden("dealer account is pending approval")
	}
	if !utils.CheckPassword(dealer.PasswordHash, input.Password) {
		return models.AuthResult{}, domain.Unauthorized("invalid email or password")
	}
	if !dealer.IsActive {
		return models.AuthResult{}, domain.Forbidden("account is deactivated")
	}
	return s.issue(models.PrincipalDealer, dealer.ID, dealer)
}

func (s *service) LoginAdmin(ctx context.Context, input models.LoginInput) (models.AuthResult, error) {
	admin, err := s.admins.FindByEmail(ctx, normalizeEmail(input.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return models.AuthResult{}, domain.Unauthorized("invalid email or password")
	}
	if err != nil {
		return models.AuthResult{}, err
	}
	if !utils.CheckPassword(admin.PasswordHash, input.Password) {
		return models.AuthResult{}, domain.Unauthorized("invalid email or password")
	}
	if !admin.IsActive {
		return models.AuthResult{}, domain.Forbidden("account is deactivated")
	}
	return s.issue(models.PrincipalAdmin, admin.ID, admin)
}

func (s *service) UserProfile(ctx context.Context, id string) (models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *service) DealerProfile(ctx context.Context, id string) (models.Dealer, error) {
	return s.dealers.FindByID(ctx, id)
}

func (s *service) AdminProfile(ctx context.Context, id string) (models.Admin, error) {
	return s.admins.FindByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *service) ListDealers(ctx context.Context, approved *bool) ([]models.Dealer, error) {
	return s.dealers.List(ctx, approved)
}

func (s *service) ApproveDealer(ctx context.Context, id string) (models.Dealer, error) {
	dealer, err := s.dealers.Approve(ctx, id, time.Now().UTC())
	if err != nil {
		return models.Dealer{}, err
	}
	logrus.WithField("dealer_id", id).Info("Dealer approved")
	return dealer, nil
}

func (s *service) BootstrapAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if _, err := s.admins.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		IsSuperAdmin: true,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}
	logrus.WithField("email", email).Info("Bootstrapped admin account")
	return nil
}
