package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/kwachira/walletctl/internal/model"
)

// listWindow is how long list resources with an explicit freshness policy
// (accounts, categories) are served from cache before a re-fetch.
const listWindow = 5 * time.Minute

// Accounts returns the user's accounts, from cache while fresh.
func (s *Service) Accounts(ctx context.Context) ([]model.Account, error) {
	if cached, ok, fresh := s.cache.Get(KeyAccounts); ok && fresh {
		return cached.([]model.Account), nil
	}

	raw, err := s.backend.Get(ctx, "/accounts", nil)
	if err != nil {
		return nil, err
	}

	var accounts []model.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	s.cache.Set(KeyAccounts, accounts, listWindow)
	return accounts, nil
}

// Categories returns the user's categories with their sub-categories, from
// cache while fresh.
func (s *Service) Categories(ctx context.Context) ([]model.CategoryDetail, error) {
	if cached, ok, fresh := s.cache.Get(KeyCategories); ok && fresh {
		return cached.([]model.CategoryDetail), nil
	}

	raw, err := s.backend.Get(ctx, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []model.CategoryDetail
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	s.cache.Set(KeyCategories, categories, listWindow)
	return categories, nil
}

// SubCategories returns the user's sub-categories with their parent
// categories. Always re-fetched on read.
func (s *Service) SubCategories(ctx context.Context) ([]model.SubCategoryDetail, error) {
	if cached, ok, fresh := s.cache.Get(KeySubCategories); ok && fresh {
		return cached.([]model.SubCategoryDetail), nil
	}

	raw, err := s.backend.Get(ctx, "/sub_categories", nil)
	if err != nil {
		return nil, err
	}

	var subCategories []model.SubCategoryDetail
	if err := json.Unmarshal(raw, &subCategories); err != nil {
		return nil, fmt.Errorf("failed to decode sub-categories: %w", err)
	}

	s.cache.Set(KeySubCategories, subCategories, 0)
	return subCategories, nil
}

// Budgets returns the active budgets for the current selection: the overall
// budget when no account is selected, that account's budget otherwise. The
// cache key and query parameters re-derive from the selection on every call.
func (s *Service) Budgets(ctx context.Context, sel Selection) ([]model.Budget, error) {
	key := BudgetsKey(sel.AccountID)
	if cached, ok, fresh := s.cache.Get(key); ok && fresh {
		return cached.([]model.Budget), nil
	}

	params := url.Values{}
	params.Set("status", string(model.BudgetStatusActive))
	params.Set("type", string(model.BudgetTypeOverall))
	params.Set("page", "1")
	params.Set("per_page", "2")
	params.Set("end_date", time.Now().UTC().Format(time.RFC3339))
	if sel.AccountID != "" {
		params.Set("type", string(model.BudgetTypeAccount))
		params.Set("account", sel.AccountID)
	}

	raw, err := s.backend.Get(ctx, "/budgets", params)
	if err != nil {
		return nil, err
	}

	var budgets []model.Budget
	if err := json.Unmarshal(raw, &budgets); err != nil {
		return nil, fmt.Errorf("failed to decode budgets: %w", err)
	}

	s.cache.Set(key, budgets, 0)
	return budgets, nil
}

// Notifications returns the user's notifications. No freshness window:
// every read outside an explicit refetch goes to the server, since the live
// channel is the only signal that the list changed.
func (s *Service) Notifications(ctx context.Context) ([]model.Notification, error) {
	if cached, ok, fresh := s.cache.Get(KeyNotifications); ok && fresh {
		return cached.([]model.Notification), nil
	}

	raw, err := s.backend.Get(ctx, "/notifications", nil)
	if err != nil {
		return nil, err
	}

	var notifications []model.Notification
	if err := json.Unmarshal(raw, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	s.cache.Set(KeyNotifications, notifications, 0)
	return notifications, nil
}

// RecentTransactions returns the five most recent transactions, flattened
// for display.
func (s *Service) RecentTransactions(ctx context.Context) ([]model.TransactionRow, error) {
	if cached, ok, fresh := s.cache.Get(KeyTransactions); ok && fresh {
		return cached.([]model.TransactionRow), nil
	}

	params := url.Values{}
	params.Set("per_page", "5")

	rows, err := s.fetchTransactions(ctx, params)
	if err != nil {
		return nil, err
	}

	s.cache.Set(KeyTransactions, rows, 0)
	return rows, nil
}

// TransactionReport returns transactions filtered to a date range. Dates
// are inclusive bounds in YYYY-MM-DD form; either may be empty. Each range
// caches under its own key so changing a bound re-fetches.
func (s *Service) TransactionReport(ctx context.Context, startDate, endDate string) ([]model.TransactionRow, error) {
	key := ReportKey(startDate, endDate)
	if cached, ok, fresh := s.cache.Get(key); ok && fresh {
		return cached.([]model.TransactionRow), nil
	}

	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}

	rows, err := s.fetchTransactions(ctx, params)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, rows, 0)
	return rows, nil
}

func (s *Service) fetchTransactions(ctx context.Context, params url.Values) ([]model.TransactionRow, error) {
	raw, err := s.backend.Get(ctx, "/transactions", params)
	if err != nil {
		return nil, err
	}

	var records []model.TransactionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	rows := make([]model.TransactionRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Flatten())
	}
	return rows, nil
}

// Profile returns the authenticated user. The fetch is disabled while the
// session store holds a profile; the first successful fetch populates it.
func (s *Service) Profile(ctx context.Context) (model.UserProfile, error) {
	if profile, ok := s.sessions.Profile(); ok {
		return profile, nil
	}

	raw, err := s.backend.Get(ctx, "/auth/me", nil)
	if err != nil {
		return model.UserProfile{}, err
	}

	var profile model.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	s.sessions.SetProfile(profile)
	return profile, nil
}
