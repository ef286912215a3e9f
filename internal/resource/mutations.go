package resource

import (
	"context"

	"github.com/kwachira/walletctl/internal/api"
)

// genericFailure is the notice shown when the server rejects a mutation
// without a detail message.
const genericFailure = "Something went wrong"

// AddAccount creates an account and refetches the accounts cache.
func (s *Service) AddAccount(ctx context.Context, in AddAccountInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := s.backend.Post(ctx, "/accounts", in); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Account successfully added!")
	s.refetch(ctx, Selection{}, KeyAccounts)
	return nil
}

// DeleteAccount removes an account by id and refetches the accounts cache.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.backend.Delete(ctx, "/accounts/"+id, nil); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Account successfully deleted!")
	s.refetch(ctx, Selection{}, KeyAccounts)
	return nil
}

// AddCategory creates a category and refetches the categories cache.
func (s *Service) AddCategory(ctx context.Context, in AddCategoryInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := s.backend.Post(ctx, "/categories", in); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Categories added successfully!")
	s.refetch(ctx, Selection{}, KeyCategories)
	return nil
}

// DeleteCategory removes a category by id and refetches the categories
// cache.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.backend.Delete(ctx, "/categories/"+id, nil); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Category successfully deleted!")
	s.refetch(ctx, Selection{}, KeyCategories)
	return nil
}

// AddSubCategory creates a sub-category and refetches the sub-categories
// cache.
func (s *Service) AddSubCategory(ctx context.Context, in AddSubCategoryInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := s.backend.Post(ctx, "/sub_categories", in); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Subcategory added successfully!")
	s.refetch(ctx, Selection{}, KeySubCategories)
	return nil
}

// DeleteSubCategory removes a sub-category by id and refetches the
// sub-categories cache.
func (s *Service) DeleteSubCategory(ctx context.Context, id string) error {
	if _, err := s.backend.Delete(ctx, "/sub_categories/"+id, nil); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Sub Category successfully deleted!")
	s.refetch(ctx, Selection{}, KeySubCategories)
	return nil
}

// AddBudget creates a budget for the current selection: account-scoped when
// an account is selected, overall otherwise. The budgets cache for that
// scope refetches on success.
func (s *Service) AddBudget(ctx context.Context, in AddBudgetInput, sel Selection) error {
	if err := in.Validate(); err != nil {
		return err
	}

	path := "/budgets"
	if sel.AccountID != "" {
		path = "/budgets/" + sel.AccountID
	}

	if _, err := s.backend.Post(ctx, path, in); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Budget added successfully.")
	s.refetch(ctx, sel, BudgetsKey(sel.AccountID))
	return nil
}

// AddTransaction records a transaction. A transaction moves an account
// balance and counts against the active budget, and the server raises a
// notification for it, so all four caches refetch.
func (s *Service) AddTransaction(ctx context.Context, in AddTransactionInput, sel Selection) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := s.backend.Post(ctx, "/transactions", in); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Transaction added successfully.")
	s.refetch(ctx, sel,
		KeyTransactions,
		KeyAccounts,
		KeyNotifications,
		BudgetsKey(sel.AccountID),
	)
	return nil
}

// RefetchNotifications invalidates and re-fetches the notifications list.
// The live channel calls this when the server signals a change.
func (s *Service) RefetchNotifications(ctx context.Context) {
	s.refetch(ctx, Selection{}, KeyNotifications)
}

// MarkNotificationRead marks one notification read and refetches the list.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	if _, err := s.backend.Patch(ctx, "/notifications/"+id+"/read", nil); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.refetch(ctx, Selection{}, KeyNotifications)
	return nil
}

// DeleteNotification removes one notification and refetches the list.
func (s *Service) DeleteNotification(ctx context.Context, id string) error {
	if _, err := s.backend.Delete(ctx, "/notifications/"+id, nil); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.refetch(ctx, Selection{}, KeyNotifications)
	return nil
}
