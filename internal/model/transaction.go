package model

import "time"

// TransactionType is the direction money moved.
type TransactionType string

const (
	// TransactionTypeIncome adds to an account balance.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense subtracts from an account balance.
	TransactionTypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is income or expense.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single recorded movement of money. Transactions are only
// ever created; the backend exposes no edit or delete for them.
type Transaction struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	Type            TransactionType `json:"type"`
	Description     string          `json:"description"`
	TransactionTime time.Time       `json:"transaction_time"`
	AccountID       string          `json:"account_id"`
	CategoryID      string          `json:"category_id"`
}

// TransactionRecord is the nested row shape the transactions endpoint
// returns: the transaction plus the account and category it touches.
type TransactionRecord struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
	Category    Category    `json:"category"`
}

// TransactionRow is the flattened form used by lists and the report view.
type TransactionRow struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	Type            TransactionType `json:"type"`
	Description     string          `json:"description"`
	Account         string          `json:"account"`
	Category        string          `json:"category"`
	TransactionTime time.Time       `json:"transaction_time"`
}

// Flatten reshapes a nested record into the row the views render.
func (r TransactionRecord) Flatten() TransactionRow {
	return TransactionRow{
		ID:              r.Transaction.ID,
		Amount:          r.Transaction.Amount,
		Type:            r.Transaction.Type,
		Description:     r.Transaction.Description,
		Account:         r.Account.Name,
		Category:        r.Category.Name,
		TransactionTime: r.Transaction.TransactionTime,
	}
}
