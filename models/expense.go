package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an actual or pending cost recorded against a client's event
// budget. isPaid is a payment-status flag only; paid and unpaid expenses
// both count toward spend.
type Expense struct {
	ID        int             `json:"id"`
	ClientID  int             `json:"clientId"`
	Category  string          `json:"category"`
	Item      string          `json:"item"`
	Cost      decimal.Decimal `json:"cost"`
	IsPaid    bool            `json:"isPaid"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExpenseInput is used for creating expenses.
type ExpenseInput struct {
	Category string          `json:"category"`
	Item     string          `json:"item"`
	Cost     decimal.Decimal `json:"cost"`
	IsPaid   bool            `json:"isPaid"`
}

func (e *ExpenseInput) Validate() string {
	if e.Category == "" {
		return "category is required"
	}
	if e.Item == "" {
		return "item is required"
	}
	if e.Cost.IsNegative() {
		return "cost must be non-negative"
	}
	return ""
}

// ExpenseUpdate is used for partial updates, most commonly flipping isPaid.
type ExpenseUpdate struct {
	Category *string          `json:"category"`
	Item     *string          `json:"item"`
	Cost     *decimal.Decimal `json:"cost"`
	IsPaid   *bool            `json:"isPaid"`
}

func (e *ExpenseUpdate) Validate() string {
	if e.Category != nil && *e.Category == "" {
		return "category must not be empty"
	}
	if e.Item != nil && *e.Item == "" {
		return "item must not be empty"
	}
	if e.Cost != nil && e.Cost.IsNegative() {
		return "cost must be non-negative"
	}
	return ""
}
