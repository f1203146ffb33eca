package models

// PrincipalKind tags which credential namespace a token was issued from.
type PrincipalKind string

const (
	PrincipalUser   PrincipalKind = "user"
	PrincipalDealer PrincipalKind = "dealer"
	PrincipalAdmin  PrincipalKind = "admin"
)

func (k PrincipalKind) Valid() bool {
	switch k {
	case PrincipalUser, PrincipalDealer, PrincipalAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	Kind PrincipalKind `json:"kind"`
	ID   string        `json:"id"`
}

func (p Principal) IsAdmin() bool {
	return p.Kind == PrincipalAdmin
}

// IsCustomer is true for the kinds that own carts, orders and quotes.
func (p Principal) IsCustomer() bool {
	return p.Kind == PrincipalUser || p.Kind == PrincipalDealer
}
