package tui

import (
	"github.com/kwachira/walletctl/internal/model"
)

// Data loading messages.
type accountsLoadedMsg struct {
	err      error
	accounts []model.Account
}

type budgetsLoadedMsg struct {
	err     error
	budgets []model.Budget
}

type transactionsLoadedMsg struct {
	err          error
	transactions []model.TransactionRow
}

type notificationsLoadedMsg struct {
	err           error
	notifications []model.Notification
}

type profileLoadedMsg struct {
	err     error
	profile model.UserProfile
}

// notificationsChangedMsg is sent from outside the program when the
// notifications cache changes: the live channel saw a transaction event, or
// a mutation refetched the list.
type notificationsChangedMsg struct{}

// notificationsSyncedMsg carries the cached notifications after a change
// notice. Unlike a load, it involves no network call of its own.
type notificationsSyncedMsg struct {
	notifications []model.Notification
}

// notificationActedMsg reports a mark-read or delete finishing. The list
// itself arrives via the cache subscription.
type notificationActedMsg struct {
	err error
}
