package models

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Company      string    `json:"company" bson:"company"`
	Phone        string    `json:"phone" bson:"phone"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Dealer struct {
	ID           string     `json:"id" bson:"id"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	CompanyName  string     `json:"company_name" bson:"company_name"`
	ContactName  string     `json:"contact_name" bson:"contact_name"`
	Phone        string     `json:"phone" bson:"phone"`
	TaxID        string     `json:"tax_id" bson:"tax_id"`
	BusinessType string     `json:"business_type" bson:"business_type"`
	Address      string     `json:"address" bson:"address"`
	IsApproved   bool       `json:"is_approved" bson:"is_approved"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
}

type Admin struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Name         string    `json:"name" bson:"name"`
	IsSuperAdmin bool      `json:"is_super_admin" bson:"is_super_admin"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type RegisterUserInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
}

type RegisterDealerInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	CompanyName  string `json:"company_name" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	TaxID        string `json:"tax_id"`
	BusinessType string `json:"business_type"`
	Address      string `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is returned by every login and registration endpoint.
type AuthResult struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Kind        PrincipalKind `json:"kind"`
	Profile     any           `json:"profile"`
}

// Customer is the display identity joined into quotes and chat listings.
type Customer struct {
	ID      string        `json:"id"`
	Kind    PrincipalKind `json:"kind"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Company string        `json:"company"`
}
