package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwachira/walletctl/internal/model"
)

func TestAccountsServedFromCacheWhileFresh(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/accounts",
		`[{"id":"acc-1","name":"Wallet","type":"cash","balance":120.5}]`)

	first, err := svc.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Wallet", first[0].Name)
	assert.Equal(t, model.AccountTypeCash, first[0].Type)

	second, err := svc.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"GET /accounts"}, deps.backend.callKeys(),
		"a fresh cache entry must not hit the server")
}

func TestAccountsRefetchAfterInvalidate(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/accounts", `[]`)

	_, err := svc.Accounts(context.Background())
	require.NoError(t, err)

	deps.cache.Invalidate(KeyAccounts)

	_, err = svc.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /accounts", "GET /accounts"}, deps.backend.callKeys())
}

func TestNotificationsAlwaysRefetch(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/notifications", `[]`)

	_, err := svc.Notifications(context.Background())
	require.NoError(t, err)
	_, err = svc.Notifications(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /notifications", "GET /notifications"}, deps.backend.callKeys(),
		"notifications carry no freshness window")
}

func TestBudgetsParamsFollowSelection(t *testing.T) {
	tests := []struct {
		name        string
		sel         Selection
		wantType    string
		wantAccount string
	}{
		{
			name:     "overall scope",
			sel:      Selection{},
			wantType: "overall",
		},
		{
			name:        "account scope",
			sel:         Selection{AccountID: "acc-7"},
			wantType:    "account",
			wantAccount: "acc-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t)
			deps.backend.respond("GET", "/budgets", `[]`)

			_, err := svc.Budgets(context.Background(), tt.sel)
			require.NoError(t, err)

			require.Len(t, deps.backend.calls, 1)
			params := deps.backend.calls[0].Params
			assert.Equal(t, "active", params.Get("status"))
			assert.Equal(t, tt.wantType, params.Get("type"))
			assert.Equal(t, "1", params.Get("page"))
			assert.Equal(t, "2", params.Get("per_page"))
			assert.NotEmpty(t, params.Get("end_date"))
			assert.Equal(t, tt.wantAccount, params.Get("account"))
		})
	}
}

func TestBudgetsCachePerScope(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/budgets",
		`[{"id":"b-1","limit":500,"amount":120,"status":"active","type":"overall"}]`)

	overall, err := svc.Budgets(context.Background(), Selection{})
	require.NoError(t, err)
	require.Len(t, overall, 1)
	assert.Equal(t, 380.0, overall[0].Remaining())

	_, ok, _ := deps.cache.Get(BudgetsKey(""))
	assert.True(t, ok)
	_, ok, _ = deps.cache.Get(BudgetsKey("acc-1"))
	assert.False(t, ok, "overall fetch must not populate an account scope")
}

func TestRecentTransactionsFlattened(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/transactions", `[
		{
			"transaction": {"id":"t-1","amount":42,"type":"expense","description":"Groceries"},
			"account": {"id":"acc-1","name":"Wallet","type":"cash"},
			"category": {"id":"cat-1","name":"Food"}
		}
	]`)

	rows, err := svc.RecentTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Wallet", rows[0].Account)
	assert.Equal(t, "Food", rows[0].Category)
	assert.Equal(t, model.TransactionTypeExpense, rows[0].Type)

	require.Len(t, deps.backend.calls, 1)
	assert.Equal(t, "5", deps.backend.calls[0].Params.Get("per_page"))
}

func TestTransactionReportParams(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
	}{
		{
			name:      "both bounds",
			startDate: "2026-01-01",
			endDate:   "2026-01-31",
		},
		{
			name:    "end only",
			endDate: "2026-01-31",
		},
		{
			name: "no bounds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t)
			deps.backend.respond("GET", "/transactions", `[]`)

			_, err := svc.TransactionReport(context.Background(), tt.startDate, tt.endDate)
			require.NoError(t, err)

			require.Len(t, deps.backend.calls, 1)
			params := deps.backend.calls[0].Params
			assert.Equal(t, tt.startDate, params.Get("start_date"))
			assert.Equal(t, tt.endDate, params.Get("end_date"))
		})
	}
}

func TestProfileDisabledWhileSessionPopulated(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/auth/me",
		`{"id":"u-1","name":"Kwaku","email":"kwaku@example.com"}`)

	first, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kwaku", first.Name)

	second, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"GET /auth/me"}, deps.backend.callKeys(),
		"a populated session store must suppress the fetch")

	deps.sessions.Clear()
	_, err = svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /auth/me", "GET /auth/me"}, deps.backend.callKeys())
}
