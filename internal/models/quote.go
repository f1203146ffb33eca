package models

import "time"

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteReviewed QuoteStatus = "reviewed"
	QuoteApproved QuoteStatus = "approved"
	QuoteDeclined QuoteStatus = "declined"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuotePending:  {QuoteReviewed, QuoteApproved, QuoteDeclined},
	QuoteReviewed: {QuoteApproved, QuoteDeclined},
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteReviewed, QuoteApproved, QuoteDeclined:
		return true
	}
	return false
}

// Terminal statuses accept no further status change.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteApproved || s == QuoteDeclined
}

// CanTransition reports whether an admin may move a quote from s to next.
// Re-applying the current status is allowed on non-terminal quotes so notes
// can be attached without moving the workflow.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	if s.Terminal() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type QuoteItem struct {
	ProductID   string  `json:"product_id" bson:"product_id" validate:"required"`
	ProductName string  `json:"product_name" bson:"product_name"`
	Quantity    int     `json:"quantity" bson:"quantity" validate:"min=1"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
}

type Quote struct {
	ID              string        `json:"id" bson:"id"`
	UserID          string        `json:"user_id" bson:"user_id"`
	UserKind        PrincipalKind `json:"user_kind" bson:"user_kind"`
	Items           []QuoteItem   `json:"items" bson:"items"`
	TotalAmount     float64       `json:"total_amount" bson:"total_amount"`
	ProjectName     string        `json:"project_name" bson:"project_name"`
	IntendedUse     string        `json:"intended_use" bson:"intended_use"`
	DeliveryDate    string        `json:"delivery_date" bson:"delivery_date"`
	DeliveryAddress string        `json:"delivery_address" bson:"delivery_address"`
	BillingAddress  string        `json:"billing_address" bson:"billing_address"`
	CompanySize     string        `json:"company_size" bson:"company_size"`
	BudgetRange     string        `json:"budget_range" bson:"budget_range"`
	Notes           string        `json:"notes" bson:"notes"`
	Status          QuoteStatus   `json:"status" bson:"status"`
	AdminNotes      string        `json:"admin_notes" bson:"admin_notes"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
	LastEmailedAt   *time.Time    `json:"last_emailed_at,omitempty" bson:"last_emailed_at,omitempty"`
}

// Recalculate resets TotalAmount from the items.
func (q *Quote) Recalculate() {
	q.TotalAmount = SumLines(q.Items, func(i QuoteItem) (int, float64) { return i.Quantity, i.Price })
}

type CreateQuoteInput struct {
	Items           []QuoteItem `json:"items" binding:"required,min=1" validate:"required,min=1,dive"`
	ProjectName     string      `json:"project_name" binding:"required"`
	IntendedUse     string      `json:"intended_use"`
	DeliveryDate    string      `json:"delivery_date"`
	DeliveryAddress string      `json:"delivery_address" binding:"required"`
	BillingAddress  string      `json:"billing_address"`
	CompanySize     string      `json:"company_size"`
	BudgetRange     string      `json:"budget_range"`
	Notes           string      `json:"notes"`
}

type UpdateQuoteStatusInput struct {
	Status     QuoteStatus `json:"status" binding:"required"`
	AdminNotes string      `json:"admin_notes"`
}

type QuoteItemPrice struct {
	ProductID string  `json:"product_id" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type UpdateQuotePricingInput struct {
	Items       []QuoteItemPrice `json:"items" validate:"dive"`
	TotalAmount *float64         `json:"total_amount" validate:"omitempty,gte=0"`
	AdminNotes  string           `json:"admin_notes"`
}

// QuoteWithCustomer is the admin listing row.
type QuoteWithCustomer struct {
	Quote    `bson:",inline"`
	Customer *Customer `json:"customer,omitempty" bson:"-"`
}
