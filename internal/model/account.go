// Package model defines the wallet domain types exchanged with the backend.
//
// All identifiers are opaque strings assigned by the server; the client
// never generates them. Monetary amounts are plain float64 values in a
// single currency.
package model

// AccountType is the kind of account an Account represents.
type AccountType string

const (
	// AccountTypeMobileMoney represents a mobile-money wallet.
	AccountTypeMobileMoney AccountType = "momo"
	// AccountTypeCash represents physical cash.
	AccountTypeCash AccountType = "cash"
	// AccountTypeBank represents a bank account.
	AccountTypeBank AccountType = "bank"
	// AccountTypeSavings represents a savings account.
	AccountTypeSavings AccountType = "saving"
)

// ValidAccountType reports whether t is one of the account types the
// backend accepts.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeMobileMoney, AccountTypeCash, AccountTypeBank, AccountTypeSavings:
		return true
	}
	return false
}

// Account is a money source owned by the authenticated user. The balance is
// maintained server-side as transactions are recorded against it.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance float64     `json:"balance"`
}
