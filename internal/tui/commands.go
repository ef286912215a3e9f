package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kwachira/walletctl/internal/model"
	"github.com/kwachira/walletctl/internal/resource"
)

const loadTimeout = 30 * time.Second

// loadCount is how many loads loadAll issues; callers bump pendingLoads by
// the same amount before dispatching it.
const loadCount = 5

// loadAll kicks off every dashboard load.
func (m Model) loadAll() tea.Cmd {
	return tea.Batch(
		m.loadProfile(),
		m.loadAccounts(),
		m.loadBudgets(),
		m.loadTransactions(),
		m.loadNotifications(),
	)
}

func (m Model) loadAccounts() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		accounts, err := m.source.Accounts(ctx)
		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (m Model) loadBudgets() tea.Cmd {
	sel := m.selection()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		budgets, err := m.source.Budgets(ctx, sel)
		return budgetsLoadedMsg{budgets: budgets, err: err}
	}
}

func (m Model) loadTransactions() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		transactions, err := m.source.RecentTransactions(ctx)
		return transactionsLoadedMsg{transactions: transactions, err: err}
	}
}

func (m Model) loadNotifications() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		notifications, err := m.source.Notifications(ctx)
		return notificationsLoadedMsg{notifications: notifications, err: err}
	}
}

func (m Model) loadProfile() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		profile, err := m.source.Profile(ctx)
		return profileLoadedMsg{profile: profile, err: err}
	}
}

// readCachedNotifications surfaces whatever the notifications cache holds.
func (m Model) readCachedNotifications() tea.Cmd {
	return func() tea.Msg {
		value, ok, _ := m.cache.Get(resource.KeyNotifications)
		if !ok {
			return nil
		}
		notifications, ok := value.([]model.Notification)
		if !ok {
			return nil
		}
		return notificationsSyncedMsg{notifications: notifications}
	}
}

func (m Model) markNotificationRead(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return notificationActedMsg{err: m.source.MarkNotificationRead(ctx, id)}
	}
}

func (m Model) deleteNotification(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return notificationActedMsg{err: m.source.DeleteNotification(ctx, id)}
	}
}
