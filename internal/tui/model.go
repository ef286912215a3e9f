// Package tui implements the interactive dashboard: accounts, the active
// budget, recent transactions, and notifications in one screen, kept current
// by the sync layer and the live notification channel.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kwachira/walletctl/internal/model"
	"github.com/kwachira/walletctl/internal/query"
	"github.com/kwachira/walletctl/internal/resource"
)

// DataSource is the slice of the sync layer the dashboard reads. Implemented
// by resource.Service.
type DataSource interface {
	Accounts(ctx context.Context) ([]model.Account, error)
	Budgets(ctx context.Context, sel resource.Selection) ([]model.Budget, error)
	RecentTransactions(ctx context.Context) ([]model.TransactionRow, error)
	Notifications(ctx context.Context) ([]model.Notification, error)
	Profile(ctx context.Context) (model.UserProfile, error)
	MarkNotificationRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
}

// Pane identifies which dashboard pane has focus.
type Pane int

const (
	PaneAccounts Pane = iota
	PaneTransactions
	PaneNotifications
)

// Model holds the dashboard state.
type Model struct {
	source        DataSource
	cache         *query.Cache
	profile       model.UserProfile
	lastError     error
	accounts      []model.Account
	budgets       []model.Budget
	transactions  []model.TransactionRow
	notifications []model.Notification
	table         table.Model
	spinner       spinner.Model
	keymap        KeyMap
	pane          Pane
	accountIndex  int // -1 selects the overall scope
	noteIndex     int
	width         int
	height        int
	pendingLoads  int
	ready         bool
	quitting      bool
}

func newModel(source DataSource, cache *query.Cache) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Description", Width: 24},
		{Title: "Account", Width: 14},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(7),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	return Model{
		source:       source,
		cache:        cache,
		spinner:      sp,
		table:        t,
		keymap:       DefaultKeyMap(),
		pane:         PaneAccounts,
		accountIndex: -1,
		width:        80,
		height:       24,
		pendingLoads: loadCount,
	}
}

// selection derives the budget scope from the highlighted account.
func (m Model) selection() resource.Selection {
	if m.accountIndex < 0 || m.accountIndex >= len(m.accounts) {
		return resource.Selection{}
	}
	return resource.Selection{AccountID: m.accounts[m.accountIndex].ID}
}

// Init starts the spinner and the initial loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		m.loadAll(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		newModel, cmd := m.handleKey(msg)
		return newModel, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case spinner.TickMsg:
		if !m.ready {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case accountsLoadedMsg:
		m.finishLoad(msg.err)
		if msg.err == nil {
			m.accounts = msg.accounts
			if m.accountIndex >= len(m.accounts) {
				m.accountIndex = len(m.accounts) - 1
			}
		}

	case budgetsLoadedMsg:
		m.finishLoad(msg.err)
		if msg.err == nil {
			m.budgets = msg.budgets
		}

	case transactionsLoadedMsg:
		m.finishLoad(msg.err)
		if msg.err == nil {
			m.transactions = msg.transactions
			m.table.SetRows(transactionRows(msg.transactions))
		}

	case notificationsLoadedMsg:
		m.finishLoad(msg.err)
		if msg.err == nil {
			m.notifications = msg.notifications
			if m.noteIndex >= len(m.notifications) {
				m.noteIndex = len(m.notifications) - 1
			}
			if m.noteIndex < 0 {
				m.noteIndex = 0
			}
		}

	case profileLoadedMsg:
		m.finishLoad(msg.err)
		if msg.err == nil {
			m.profile = msg.profile
		}

	case notificationsChangedMsg:
		// The live channel or a mutation touched the notifications cache.
		// Read what is there instead of fetching; fetching here would Set
		// the cache again and notify us in a loop.
		cmds = append(cmds, m.readCachedNotifications())

	case notificationsSyncedMsg:
		m.notifications = msg.notifications
		if m.noteIndex >= len(m.notifications) {
			m.noteIndex = len(m.notifications) - 1
		}
		if m.noteIndex < 0 {
			m.noteIndex = 0
		}

	case notificationActedMsg:
		if msg.err != nil {
			m.lastError = msg.err
		}
	}

	if m.pane == PaneTransactions {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// finishLoad accounts for one completed load command.
func (m *Model) finishLoad(err error) {
	if err != nil {
		m.lastError = err
	}
	if m.pendingLoads > 0 {
		m.pendingLoads--
	}
	if m.pendingLoads == 0 {
		m.ready = true
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keymap.Quit), keyMatches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case keyMatches(msg, m.keymap.NextPane):
		m.pane = (m.pane + 1) % 3
		m.table.Blur()
		if m.pane == PaneTransactions {
			m.table.Focus()
		}
		return m, nil

	case keyMatches(msg, m.keymap.Refresh):
		m.ready = true // keep rendering while the reload runs
		m.pendingLoads += loadCount
		return m, m.loadAll()

	case keyMatches(msg, m.keymap.Up), keyMatches(msg, m.keymap.Down):
		if m.pane == PaneTransactions {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		delta := 1
		if keyMatches(msg, m.keymap.Up) {
			delta = -1
		}
		return m.moveCursor(delta)

	case keyMatches(msg, m.keymap.MarkRead):
		if m.pane == PaneNotifications {
			if note, ok := m.currentNotification(); ok {
				return m, m.markNotificationRead(note.ID)
			}
		}

	case keyMatches(msg, m.keymap.Delete):
		if m.pane == PaneNotifications {
			if note, ok := m.currentNotification(); ok {
				return m, m.deleteNotification(note.ID)
			}
		}
	}
	return m, nil
}

// moveCursor moves within the focused pane. Moving the account cursor
// changes the budget scope, which needs a fresh budgets load.
func (m Model) moveCursor(delta int) (Model, tea.Cmd) {
	switch m.pane {
	case PaneAccounts:
		next := m.accountIndex + delta
		if next < -1 {
			next = -1
		}
		if next >= len(m.accounts) {
			next = len(m.accounts) - 1
		}
		if next != m.accountIndex {
			m.accountIndex = next
			m.pendingLoads++
			return m, m.loadBudgets()
		}
	case PaneNotifications:
		next := m.noteIndex + delta
		if next < 0 {
			next = 0
		}
		if next >= len(m.notifications) {
			next = len(m.notifications) - 1
		}
		if next >= 0 {
			m.noteIndex = next
		}
	}
	return m, nil
}

func (m Model) currentNotification() (model.Notification, bool) {
	if m.noteIndex < 0 || m.noteIndex >= len(m.notifications) {
		return model.Notification{}, false
	}
	return m.notifications[m.noteIndex], true
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	tableHeight := m.height/2 - 4
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetHeight(tableHeight)
}

// unreadCount counts notifications not yet marked read.
func (m Model) unreadCount() int {
	count := 0
	for _, note := range m.notifications {
		if !note.IsRead {
			count++
		}
	}
	return count
}
