package model

import "time"

// BudgetType is the scope a budget applies to.
type BudgetType string

const (
	// BudgetTypeOverall covers spending across every account.
	BudgetTypeOverall BudgetType = "overall"
	// BudgetTypeAccount covers spending on a single account.
	BudgetTypeAccount BudgetType = "account"
)

// BudgetStatus tracks whether a budget window is still running.
type BudgetStatus string

const (
	// BudgetStatusActive marks a budget whose window is still open.
	BudgetStatusActive BudgetStatus = "active"
	// BudgetStatusInactive marks an expired budget.
	BudgetStatusInactive BudgetStatus = "inactive"
)

// Budget caps spending for a scope over a date window. Amount is the spent
// total, maintained server-side; at most one budget is active per scope.
type Budget struct {
	ID        string       `json:"id"`
	Limit     float64      `json:"limit"`
	Amount    float64      `json:"amount"`
	Status    BudgetStatus `json:"status"`
	Type      BudgetType   `json:"type"`
	AccountID string       `json:"account_id,omitempty"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
}

// Remaining is the unspent portion of the budget, never below zero.
func (b Budget) Remaining() float64 {
	if b.Amount >= b.Limit {
		return 0
	}
	return b.Limit - b.Amount
}
