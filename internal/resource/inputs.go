package resource

import (
	"strings"
	"time"

	"github.com/kwachira/walletctl/internal/model"
)

// ValidationError is a client-side schema failure. It blocks the mutation
// before any network call; the message is shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// AddAccountInput is the payload for creating an account.
type AddAccountInput struct {
	Name    string            `json:"name"`
	Type    model.AccountType `json:"type"`
	Balance float64           `json:"balance"`
}

// Validate applies the add-account form rules.
func (in AddAccountInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required")
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		return invalid("Type is required")
	}
	if !model.ValidAccountType(in.Type) {
		return invalid("Type must be one of momo, cash, bank, saving")
	}
	if in.Balance < 1 {
		return invalid("Balance is too low")
	}
	return nil
}

// AddCategoryInput is the payload for creating a category.
type AddCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate applies the add-category form rules.
func (in AddCategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalid("Description is required")
	}
	return nil
}

// AddSubCategoryInput is the payload for creating a sub-category.
type AddSubCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// Validate applies the add-sub-category form rules.
func (in AddSubCategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalid("Description is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return invalid("Category is required")
	}
	return nil
}

// AddBudgetInput is the payload for creating a budget, overall or
// account-scoped depending on the current selection.
type AddBudgetInput struct {
	Limit     float64   `json:"limit"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Validate applies the add-budget form rules.
func (in AddBudgetInput) Validate() error {
	if in.Limit < 1 {
		return invalid("Limit is too low")
	}
	if in.StartDate.IsZero() {
		return invalid("Start date is required")
	}
	if in.EndDate.IsZero() {
		return invalid("End date is required")
	}
	if in.EndDate.Before(in.StartDate) {
		return invalid("End date must not be before start date")
	}
	return nil
}

// AddTransactionInput is the payload for recording a transaction.
type AddTransactionInput struct {
	Amount      float64               `json:"amount"`
	Type        model.TransactionType `json:"type"`
	Description string                `json:"description"`
	AccountID   string                `json:"account_id"`
	CategoryID  string                `json:"category_id"`
}

// Validate applies the add-transaction form rules.
func (in AddTransactionInput) Validate() error {
	if in.Amount < 1 {
		return invalid("amount is too low")
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		return invalid("Type is required")
	}
	if !model.ValidTransactionType(in.Type) {
		return invalid("Type must be income or expense")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalid("Description is required")
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return invalid("Account is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return invalid("Category is required")
	}
	return nil
}

// Credentials is the sign-in payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the login form rules.
func (in Credentials) Validate() error {
	if strings.TrimSpace(in.Email) == "" {
		return invalid("Email is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return invalid("Password is required")
	}
	return nil
}

// SignupInput is the registration payload.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the registration form rules.
func (in SignupInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return invalid("Email is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return invalid("Password is required")
	}
	return nil
}
