// Package resource binds each backend resource to the query cache: one
// fetcher per resource with its cache key and freshness policy, and one
// mutation per create/delete operation with the set of caches it affects.
package resource

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/kwachira/walletctl/internal/api"
	"github.com/kwachira/walletctl/internal/query"
	"github.com/kwachira/walletctl/internal/session"
)

// Cache keys, one per resource.
const (
	KeyAccounts      = "accounts"
	KeyCategories    = "categories"
	KeySubCategories = "sub_categories"
	KeyBudgets       = "budgets"
	KeyNotifications = "notifications"
	KeyTransactions  = "transactions"
)

// BudgetsKey derives the budgets cache key for the current account
// selection. The overall scope and each account scope cache independently.
func BudgetsKey(accountID string) string {
	if accountID == "" {
		return KeyBudgets
	}
	return KeyBudgets + ":" + accountID
}

// ReportKey derives the transactions cache key for a report date range, so
// changing either bound re-fetches.
func ReportKey(startDate, endDate string) string {
	return KeyTransactions + ":" + startDate + ":" + endDate
}

// Selection carries the view state the budgets resource depends on: the
// currently selected account. It stands in for the dashboard URL's query
// parameter; empty means overall scope.
type Selection struct {
	AccountID string
}

// Backend issues requests against the wallet API. Implemented by api.Client.
type Backend interface {
	Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
}

// TokenStore persists the bearer token across runs. Implemented by
// storage.SQLiteStore.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Service is the data-synchronization layer: every view reads server state
// through it and every mutation goes through it, so cache keys and refetch
// ordering live in exactly one place.
type Service struct {
	backend  Backend
	cache    *query.Cache
	sessions *session.Store
	tokens   TokenStore
	notices  api.Notifier
}

// NewService wires the synchronization layer together.
func NewService(backend Backend, cache *query.Cache, sessions *session.Store, tokens TokenStore, notices api.Notifier) *Service {
	return &Service{
		backend:  backend,
		cache:    cache,
		sessions: sessions,
		tokens:   tokens,
		notices:  notices,
	}
}

// Cache exposes the underlying cache for view subscriptions.
func (s *Service) Cache() *query.Cache {
	return s.cache
}

// refetch invalidates each affected key and issues a fresh fetch for it, in
// the declared order. Each fetch stands alone: a failure is logged and the
// remaining keys still refetch, so views tolerate partial refreshes.
func (s *Service) refetch(ctx context.Context, sel Selection, keys ...string) {
	for _, key := range keys {
		s.cache.Invalidate(key)
		if err := s.fetch(ctx, key, sel); err != nil {
			slog.Warn("Refetch failed", "key", key, "error", err)
		}
	}
}

func (s *Service) fetch(ctx context.Context, key string, sel Selection) error {
	var err error
	switch key {
	case KeyAccounts:
		_, err = s.Accounts(ctx)
	case KeyCategories:
		_, err = s.Categories(ctx)
	case KeySubCategories:
		_, err = s.SubCategories(ctx)
	case KeyNotifications:
		_, err = s.Notifications(ctx)
	case KeyTransactions:
		_, err = s.RecentTransactions(ctx)
	case BudgetsKey(sel.AccountID):
		_, err = s.Budgets(ctx, sel)
	default:
		slog.Debug("No fetcher for cache key", "key", key)
	}
	return err
}
